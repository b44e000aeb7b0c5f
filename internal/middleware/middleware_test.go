package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type staticValidator struct {
	token string
	id    uuid.UUID
}

func (v staticValidator) ValidateToken(token string) (uuid.UUID, error) {
	if token != v.token {
		return uuid.Nil, errors.New("bad token")
	}
	return v.id, nil
}

func newRouter(v TokenValidator, allowQuery bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/me", AuthMiddleware(v, allowQuery), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	v := staticValidator{token: "good", id: uuid.New()}

	tests := []struct {
		name       string
		header     string
		query      string
		allowQuery bool
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", "", false, http.StatusUnauthorized, "Missing authorization header"},
		{"wrong scheme", "Basic abc", "", false, http.StatusUnauthorized, "Invalid authorization header format"},
		{"empty token", "Bearer  ", "", false, http.StatusUnauthorized, "Empty token"},
		{"invalid token", "Bearer nope", "", false, http.StatusUnauthorized, "Invalid or expired token"},
		{"valid header", "Bearer good", "", false, http.StatusOK, v.id.String()},
		{"query not allowed", "", "good", false, http.StatusUnauthorized, "Missing authorization header"},
		{"query allowed", "", "good", true, http.StatusOK, v.id.String()},
		{"bad query token", "", "nope", true, http.StatusUnauthorized, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(v, tt.allowQuery).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(staticValidator{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
