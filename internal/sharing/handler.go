package sharing

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vault-backend/internal/shared/server/middleware"
	"vault-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the sharing service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches sharing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invite", h.currentCode)
	rg.POST("/invite/rotate", h.rotateCode)
	rg.POST("/invite/redeem", h.redeem)
	rg.GET("/documents/shared", h.sharedDocuments)
	rg.GET("/sharing/viewers", h.listViewers)
	rg.DELETE("/sharing/viewers/:viewerId", h.revoke)
}

func (h *Handler) currentCode(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	code, err := h.Svc.CurrentInviteCode(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch invite code", nil)
		return
	}

	respond.OK(c, gin.H{"code": code})
}

func (h *Handler) rotateCode(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	code, err := h.Svc.RotateInviteCode(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to rotate invite code", nil)
		return
	}

	respond.OK(c, gin.H{"code": code})
}

type redeemRequest struct {
	Code string `json:"code"`
}

func (h *Handler) redeem(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invite code is required", nil)
		return
	}

	result, err := h.Svc.Redeem(c.Request.Context(), req.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCode):
			respond.Error(c, http.StatusNotFound, "not_found", "invalid invite code", nil)
		case errors.Is(err, ErrSelfRedeem):
			respond.Error(c, http.StatusConflict, "conflict", "you cannot redeem your own invite code", nil)
		case errors.Is(err, ErrAlreadyConnected):
			respond.Error(c, http.StatusConflict, "conflict", "you already have access to these documents", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redeem invite code", nil)
		}
		return
	}

	c.Set("ownerId", result.OwnerID)
	respond.OK(c, result)
}

func (h *Handler) sharedDocuments(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.SharedDocumentsFor(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list shared documents", nil)
		return
	}

	respond.OK(c, gin.H{"documents": docs})
}

func (h *Handler) listViewers(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	viewers, err := h.Svc.ListGrantedViewers(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list viewers", nil)
		return
	}

	respond.OK(c, gin.H{"viewers": viewers})
}

func (h *Handler) revoke(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	viewerID := c.Param("viewerId")

	if err := h.Svc.RevokeAccess(c.Request.Context(), userID, viewerID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to revoke access", nil)
		return
	}

	respond.OK(c, gin.H{"ownerId": userID, "viewerId": viewerID})
}
