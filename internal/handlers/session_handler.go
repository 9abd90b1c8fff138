package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/session"
)

type SessionHandler struct {
	Sessions *session.Registry[*session.Auth]
}

type loginRequest struct {
	Token string      `json:"token" binding:"required"`
	User  models.User `json:"user"`
}

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	IsAdmin       bool         `json:"isAdmin"`
	User          *models.User `json:"user"`
}

func (h *SessionHandler) auth(c *gin.Context) *session.Auth {
	return h.Sessions.For(c.Request.Context(), sessionID(c))
}

// POST /v1/session
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	a := h.auth(c)
	user := a.Login(c.Request.Context(), req.Token, req.User)
	c.JSON(http.StatusOK, SessionResponse{Authenticated: true, IsAdmin: a.IsAdmin(), User: &user})
}

// GET /v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	a := h.auth(c)
	resp := SessionResponse{Authenticated: a.IsAuthenticated(c.Request.Context()), IsAdmin: a.IsAdmin()}
	if u, ok := a.CurrentUser(); ok {
		resp.User = &u
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /v1/session
func (h *SessionHandler) Logout(c *gin.Context) {
	h.auth(c).Logout(c.Request.Context())
	// sin token no hay nada que mantener en memoria
	h.Sessions.Forget(sessionID(c))
	c.JSON(http.StatusOK, SuccessResponse{Message: "session closed"})
}
