package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"vault-backend/internal/access"
	googleauth "vault-backend/internal/auth"
	"vault-backend/internal/documents"
	"vault-backend/internal/invites"
	"vault-backend/internal/notify"
	"vault-backend/internal/shared/config"
	"vault-backend/internal/shared/server"
	"vault-backend/internal/shared/storage/db"
	"vault-backend/internal/shared/storage/object"
	localstore "vault-backend/internal/shared/storage/object/local"
	s3store "vault-backend/internal/shared/storage/object/s3"
	"vault-backend/internal/sharing"
	"vault-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Notifier         notify.Sink
	DocumentsRepo    documents.Repo
	InvitesRepo      invites.Repo
	AccessRepo       access.Repo
	UsersRepo        users.Repo
	DocumentsService *documents.Service
	SharingService   *sharing.Service
	UsersService     *users.Service
	DocumentsHandler *documents.Handler
	SharingHandler   *sharing.Handler
	UsersHandler     *users.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Notifier: notifier,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		SharingHandler:  app.SharingHandler,
		UserHandler:     app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildNotifier(ctx context.Context, cfg config.Config) (notify.Sink, error) {
	if strings.TrimSpace(cfg.NotifyQueueURL) == "" {
		return notify.LogSink{}, nil
	}
	return notify.NewSQSSink(ctx, cfg.AWSRegion, cfg.NotifyQueueURL)
}

func buildCache(cfg config.Config) sharing.ViewCache {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return sharing.NoopCache{}
	}
	cache, err := sharing.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("bootstrap: redis connect failed; shared views uncached: %v", err)
		return sharing.NoopCache{}
	}
	return cache
}

func buildServices(app *App) {
	var docRepo documents.Repo
	var inviteRepo invites.Repo
	var accessRepo access.Repo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		inviteRepo = &invites.PGRepo{DB: app.DB}
		accessRepo = &access.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		inviteRepo = invites.NewMemoryRepo()
		accessRepo = access.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)

	sharingSvc := &sharing.Service{
		Invites:  invites.NewRegistry(inviteRepo),
		Access:   accessRepo,
		Docs:     docRepo,
		Users:    userSvc,
		Cache:    buildCache(app.Config),
		Notifier: app.Notifier,
	}

	docSvc := &documents.Service{
		Store:    app.Store,
		Repo:     docRepo,
		Views:    sharingSvc,
		Notifier: app.Notifier,
	}

	app.DocumentsRepo = docRepo
	app.InvitesRepo = inviteRepo
	app.AccessRepo = accessRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.SharingService = sharingSvc
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.SharingHandler = sharing.NewHandler(sharingSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
