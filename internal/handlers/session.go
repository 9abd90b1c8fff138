package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"

	sessionKey    = "sessionID"
	sessionMaxAge = 30 * 24 * 60 * 60
)

// SessionID identifica la sesión del navegador: cabecera X-Session-ID,
// luego la cookie session_id y si no hay ninguna se genera una nueva.
// Solo se aceptan UUIDs para que el id no altere el prefijo de claves.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if !validSessionID(id) {
			id, _ = c.Cookie(SessionCookie)
		}
		if !validSessionID(id) {
			id = uuid.NewString()
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", false, true)
		c.Next()
	}
}

func validSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// sessionID retorna el id fijado por el middleware SessionID
func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
