package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const knownSession = "0d7e9c1a-52f4-4b8e-9a61-3c2b1f0e7d45"

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", SessionID(), func(c *gin.Context) {
		c.String(http.StatusOK, sessionID(c))
	})
	return r
}

func TestSessionIDFromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, knownSession)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "0b7c8d21-9a3e-4f5b-8c6d-7e8f9a0b1c2d"})
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)

	assert.Equal(t, knownSession, w.Body.String())
	assert.Equal(t, knownSession, w.Header().Get(SessionHeader))
}

func TestSessionIDFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: knownSession})
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)

	assert.Equal(t, knownSession, w.Body.String())
}

func TestSessionIDMintedWhenMissingOrInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "evil:key")
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)

	minted := w.Body.String()
	assert.True(t, validSessionID(minted))
	assert.NotEqual(t, "evil:key", minted)
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+minted)
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = parseID("0")
	assert.False(t, ok)
	_, ok = parseID("x")
	assert.False(t, ok)
}
