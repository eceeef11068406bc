package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "s3cret"

type recordingPushHandler struct {
	refs []string
}

func (r *recordingPushHandler) HandlePush(_ context.Context, ref string) (bool, error) {
	r.refs = append(r.refs, ref)
	return true, nil
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func send(t *testing.T, h *WebhookHandler, event, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/webhook/git", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", event)
	req.Header.Set("X-Hub-Signature-256", signature)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGitWebhook(t *testing.T) {
	pushBody := `{"ref":"refs/heads/main","before":"a","after":"b"}`

	tests := []struct {
		name      string
		event     string
		body      string
		signature string
		wantCode  int
		wantRefs  []string
	}{
		{
			name:      "valid push",
			event:     "push",
			body:      pushBody,
			signature: sign(pushBody),
			wantCode:  http.StatusNoContent,
			wantRefs:  []string{"refs/heads/main"},
		},
		{
			name:      "bad signature",
			event:     "push",
			body:      pushBody,
			signature: "sha256=deadbeef",
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "other event ignored",
			event:     "ping",
			body:      `{"zen":"hi"}`,
			signature: sign(`{"zen":"hi"}`),
			wantCode:  http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pushes := &recordingPushHandler{}
			w := send(t, NewWebhookHandler(testSecret, pushes), tt.event, tt.body, tt.signature)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantRefs, pushes.refs)
		})
	}
}
