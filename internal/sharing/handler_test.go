package sharing_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"vault-backend/internal/bootstrap"
	"vault-backend/internal/shared/config"
)

const (
	ownerGuest  = "owner-guest"
	viewerGuest = "viewer-guest"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func do(t *testing.T, router *gin.Engine, method, path, guestID string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func redeem(t *testing.T, router *gin.Engine, guestID, code string) *httptest.ResponseRecorder {
	t.Helper()
	body := bytes.NewBufferString(`{"code":"` + code + `"}`)
	return do(t, router, http.MethodPost, "/api/v1/invite/redeem", guestID, body, "application/json")
}

func uploadPDF(t *testing.T, router *gin.Engine, guestID, fileName string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 unreadable")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp := do(t, router, http.MethodPost, "/api/v1/documents", guestID, body, writer.FormDataContentType())
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload %s: expected 201, got %d: %s", fileName, resp.Code, resp.Body.String())
	}
}

func TestInviteRedeemSharedViewRevoke(t *testing.T) {
	router := newTestApp(t)

	// The owner's first invite request issues a code.
	respCode := do(t, router, http.MethodGet, "/api/v1/invite", ownerGuest, nil, "")
	if respCode.Code != http.StatusOK {
		t.Fatalf("get invite: expected 200, got %d", respCode.Code)
	}
	var invite struct {
		Code string `json:"code"`
	}
	decode(t, respCode, &invite)
	if len(invite.Code) != 6 {
		t.Fatalf("invite code: got %q", invite.Code)
	}

	// Rotation kills the old code before anyone redeems it.
	respRotate := do(t, router, http.MethodPost, "/api/v1/invite/rotate", ownerGuest, nil, "")
	if respRotate.Code != http.StatusOK {
		t.Fatalf("rotate: expected 200, got %d", respRotate.Code)
	}
	var rotated struct {
		Code string `json:"code"`
	}
	decode(t, respRotate, &rotated)

	if resp := redeem(t, router, viewerGuest, invite.Code); resp.Code != http.StatusNotFound {
		t.Fatalf("stale code: expected 404, got %d: %s", resp.Code, resp.Body.String())
	}

	// The owner cannot redeem their own code.
	if resp := redeem(t, router, ownerGuest, rotated.Code); resp.Code != http.StatusConflict {
		t.Fatalf("self redeem: expected 409, got %d", resp.Code)
	}

	// The viewer redeems the active code; a second attempt conflicts.
	respRedeem := redeem(t, router, viewerGuest, rotated.Code)
	if respRedeem.Code != http.StatusOK {
		t.Fatalf("redeem: expected 200, got %d: %s", respRedeem.Code, respRedeem.Body.String())
	}
	var result struct {
		OwnerID   string `json:"ownerId"`
		OwnerName string `json:"ownerName"`
		ViewerID  string `json:"viewerId"`
	}
	decode(t, respRedeem, &result)
	if result.OwnerID != "guest:"+ownerGuest || result.ViewerID != "guest:"+viewerGuest {
		t.Fatalf("unexpected redeem result: %+v", result)
	}
	// Guests have no stored profile, so the display name falls back.
	if result.OwnerName != "Unknown user" {
		t.Fatalf("owner name: got %q", result.OwnerName)
	}

	if resp := redeem(t, router, viewerGuest, rotated.Code); resp.Code != http.StatusConflict {
		t.Fatalf("duplicate redeem: expected 409, got %d", resp.Code)
	}

	// A document uploaded after the grant shows up in the shared view.
	uploadPDF(t, router, ownerGuest, "policy.pdf")

	respShared := do(t, router, http.MethodGet, "/api/v1/documents/shared", viewerGuest, nil, "")
	if respShared.Code != http.StatusOK {
		t.Fatalf("shared view: expected 200, got %d", respShared.Code)
	}
	var shared struct {
		Documents []struct {
			DocumentID  string `json:"documentId"`
			OwnerID     string `json:"ownerId"`
			OwnerName   string `json:"ownerName"`
			DisplayName string `json:"displayName"`
		} `json:"documents"`
	}
	decode(t, respShared, &shared)
	if len(shared.Documents) != 1 {
		t.Fatalf("expected 1 shared document, got %d", len(shared.Documents))
	}
	if shared.Documents[0].OwnerID != "guest:"+ownerGuest {
		t.Fatalf("shared owner: got %q", shared.Documents[0].OwnerID)
	}
	if shared.Documents[0].OwnerName != "Unknown user" {
		t.Fatalf("shared owner name: got %q", shared.Documents[0].OwnerName)
	}
	if shared.Documents[0].DisplayName != "Document - policy.pdf" {
		t.Fatalf("shared display name: got %q", shared.Documents[0].DisplayName)
	}

	// Sharing is one-way: the owner sees nothing from the viewer.
	respOwnerShared := do(t, router, http.MethodGet, "/api/v1/documents/shared", ownerGuest, nil, "")
	var ownerShared struct {
		Documents []json.RawMessage `json:"documents"`
	}
	decode(t, respOwnerShared, &ownerShared)
	if len(ownerShared.Documents) != 0 {
		t.Fatalf("owner should see no shared documents, got %d", len(ownerShared.Documents))
	}

	// The owner sees the viewer in their list and revokes them.
	respViewers := do(t, router, http.MethodGet, "/api/v1/sharing/viewers", ownerGuest, nil, "")
	if respViewers.Code != http.StatusOK {
		t.Fatalf("viewers: expected 200, got %d", respViewers.Code)
	}
	var viewers struct {
		Viewers []struct {
			ViewerID string `json:"viewerId"`
			Name     string `json:"name"`
		} `json:"viewers"`
	}
	decode(t, respViewers, &viewers)
	if len(viewers.Viewers) != 1 || viewers.Viewers[0].ViewerID != "guest:"+viewerGuest {
		t.Fatalf("unexpected viewers: %+v", viewers.Viewers)
	}
	if viewers.Viewers[0].Name != "Unknown user" {
		t.Fatalf("viewer name: got %q", viewers.Viewers[0].Name)
	}

	respRevoke := do(t, router, http.MethodDelete, "/api/v1/sharing/viewers/guest:"+viewerGuest, ownerGuest, nil, "")
	if respRevoke.Code != http.StatusOK {
		t.Fatalf("revoke: expected 200, got %d", respRevoke.Code)
	}

	respShared2 := do(t, router, http.MethodGet, "/api/v1/documents/shared", viewerGuest, nil, "")
	var shared2 struct {
		Documents []json.RawMessage `json:"documents"`
	}
	decode(t, respShared2, &shared2)
	if len(shared2.Documents) != 0 {
		t.Fatalf("expected empty shared view after revoke, got %d", len(shared2.Documents))
	}
}

func TestRedeemValidationAndMalformedCode(t *testing.T) {
	router := newTestApp(t)

	// Missing body.
	resp := do(t, router, http.MethodPost, "/api/v1/invite/redeem", viewerGuest, bytes.NewBufferString(`{}`), "application/json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("empty code: expected 400, got %d", resp.Code)
	}

	// Malformed codes resolve to not-found rather than leaking format hints.
	if resp := redeem(t, router, viewerGuest, "nope"); resp.Code != http.StatusNotFound {
		t.Fatalf("malformed code: expected 404, got %d", resp.Code)
	}
}
