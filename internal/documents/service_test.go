package documents

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"vault-backend/internal/notify"
	localstore "vault-backend/internal/shared/storage/object/local"
)

type recordingInvalidator struct {
	owners []string
}

func (r *recordingInvalidator) InvalidateOwnerViews(ctx context.Context, ownerID string) error {
	r.owners = append(r.owners, ownerID)
	return nil
}

type recordingSink struct {
	events []notify.Event
}

func (r *recordingSink) Send(ctx context.Context, event notify.Event) error {
	r.events = append(r.events, event)
	return nil
}

func newTestService(t *testing.T) (*Service, *recordingInvalidator, *recordingSink) {
	t.Helper()
	views := &recordingInvalidator{}
	sink := &recordingSink{}
	svc := &Service{
		Store:    localstore.New(t.TempDir()),
		Repo:     NewMemoryRepo(),
		Views:    views,
		Notifier: sink,
	}
	return svc, views, sink
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader([]byte("hello")), "notes.txt", "text/plain", 5)
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("got err=%v, want ErrInvalidType", err)
	}
}

func TestUploadRejectsDeclaredOversize(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader([]byte("tiny")), "big.pdf", MimePDF, MaxUploadBytes+1)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got err=%v, want ErrTooLarge", err)
	}
}

func TestUploadRejectsActualOversize(t *testing.T) {
	svc, _, _ := newTestService(t)

	// The client declares a small size but sends more bytes than allowed.
	body := bytes.Repeat([]byte("x"), MaxUploadBytes+1)
	_, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader(body), "big.png", MimePNG, 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got err=%v, want ErrTooLarge", err)
	}
}

func TestUploadRejectsBadFileName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader([]byte("x")), "../../etc/passwd", MimePNG, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got err=%v, want ErrInvalidInput", err)
	}
}

func TestUploadUnreadablePDFSucceedsWithNullFields(t *testing.T) {
	svc, views, sink := newTestService(t)

	data := []byte("%PDF-1.4 this is not actually parseable")
	doc, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader(data), "policy.pdf", MimePDF, int64(len(data)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatalf("expected persisted document, got %+v", doc)
	}
	if doc.Fields.InsuranceType != nil || doc.Fields.PolicyNumber != nil {
		t.Fatalf("expected null fields for unreadable pdf, got %+v", doc.Fields)
	}
	if doc.DisplayName != "Document - policy.pdf" {
		t.Fatalf("display name: got %q", doc.DisplayName)
	}
	if len(views.owners) != 1 || views.owners[0] != "owner-1" {
		t.Fatalf("expected one view invalidation for owner-1, got %v", views.owners)
	}
	if len(sink.events) != 1 || sink.events[0].Kind != notify.DocumentUploaded {
		t.Fatalf("expected one upload event, got %v", sink.events)
	}
}

func TestUploadNonPDFSkipsExtraction(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Content that would match field rules must be ignored for images.
	data := []byte("Auto Insurance Policy #: 99887-XYZ")
	doc, err := svc.Upload(context.Background(), "owner-1", bytes.NewReader(data), "scan.png", MimePNG, int64(len(data)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.Fields.InsuranceType != nil || doc.Fields.PolicyNumber != nil {
		t.Fatalf("expected no extraction for png, got %+v", doc.Fields)
	}
	if doc.DisplayName != "Document - scan.png" {
		t.Fatalf("display name: got %q", doc.DisplayName)
	}
}

func TestDisplayNameUsesDetectedType(t *testing.T) {
	auto := "Auto"
	if got := displayName(&auto, "policy.pdf"); got != "Auto Insurance - policy.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := displayName(nil, "scan.png"); got != "Document - scan.png" {
		t.Fatalf("got %q", got)
	}
	empty := ""
	if got := displayName(&empty, "scan.png"); got != "Document - scan.png" {
		t.Fatalf("got %q", got)
	}
}

func TestUpdateDetailsRejectsEmptyDisplayName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustUpload(t, svc, "owner-1", "policy.pdf")

	empty := ""
	_, err := svc.UpdateDetails(ctx, "owner-1", doc.ID, UpdatePatch{DisplayName: &empty})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got err=%v, want ErrInvalidInput", err)
	}
}

func TestUpdateDetailsPatchesOnlyProvidedFields(t *testing.T) {
	svc, views, _ := newTestService(t)
	ctx := context.Background()

	doc := mustUpload(t, svc, "owner-1", "policy.pdf")
	views.owners = nil

	policy := "POL-778899"
	name := "Renamed policy"
	updated, err := svc.UpdateDetails(ctx, "owner-1", doc.ID, UpdatePatch{
		DisplayName:  &name,
		PolicyNumber: &policy,
	})
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	if updated.DisplayName != "Renamed policy" {
		t.Fatalf("display name: got %q", updated.DisplayName)
	}
	if updated.Fields.PolicyNumber == nil || *updated.Fields.PolicyNumber != "POL-778899" {
		t.Fatalf("policy number: got %v", updated.Fields.PolicyNumber)
	}
	if updated.Fields.Provider != nil {
		t.Fatalf("provider should stay untouched, got %v", updated.Fields.Provider)
	}
	if len(views.owners) != 1 {
		t.Fatalf("expected view invalidation on update, got %v", views.owners)
	}

	stored, err := svc.Get(ctx, "owner-1", doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.DisplayName != "Renamed policy" {
		t.Fatalf("stored display name: got %q", stored.DisplayName)
	}
}

func TestUpdateDetailsScopedToOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc := mustUpload(t, svc, "owner-1", "policy.pdf")

	name := "hijacked"
	_, err := svc.UpdateDetails(ctx, "someone-else", doc.ID, UpdatePatch{DisplayName: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err=%v, want ErrNotFound", err)
	}
}

func TestDeleteInvalidatesViewsAndNotifies(t *testing.T) {
	svc, views, sink := newTestService(t)
	ctx := context.Background()

	doc := mustUpload(t, svc, "owner-1", "policy.pdf")
	views.owners = nil
	sink.events = nil

	if err := svc.Delete(ctx, "owner-1", doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(views.owners) != 1 || views.owners[0] != "owner-1" {
		t.Fatalf("expected view invalidation on delete, got %v", views.owners)
	}
	if len(sink.events) != 1 || sink.events[0].Kind != notify.DocumentDeleted {
		t.Fatalf("expected delete event, got %v", sink.events)
	}

	if err := svc.Delete(ctx, "owner-1", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got err=%v, want ErrNotFound", err)
	}
}

func mustUpload(t *testing.T, svc *Service, ownerID, fileName string) Document {
	t.Helper()
	data := []byte("%PDF-1.4 unreadable")
	doc, err := svc.Upload(context.Background(), ownerID, bytes.NewReader(data), fileName, MimePDF, int64(len(data)))
	if err != nil {
		t.Fatalf("Upload %s: %v", fileName, err)
	}
	return doc
}
