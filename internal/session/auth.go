// Package session guarda el estado de cada sesión del navegador (token y
// usuario) y el registro que asigna a cada sesión sus propios stores.
package session

import (
	"context"
	"encoding/json"
	"log"
	"slices"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/models"
	"storefront/internal/reactive"
	"storefront/internal/storage"
)

const (
	TokenKey  = "auth_token"
	UserKey   = "auth_user"
	RoleAdmin = "ROLE_ADMIN"
)

// Auth guarda el token y el usuario de la sesión. No valida el token:
// solo lo conserva y lee sus roles para la vista.
type Auth struct {
	mu     sync.Mutex
	kv     storage.Store
	user   *reactive.Subject[*models.User]
	logger *log.Logger
}

// NewAuth restaura la sesión guardada; un usuario corrupto cierra la sesión
func NewAuth(ctx context.Context, kv storage.Store, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Default()
	}
	a := &Auth{
		kv:     kv,
		user:   reactive.NewSubject[*models.User](nil),
		logger: logger,
	}
	a.loadStoredAuth(ctx)
	return a
}

func (a *Auth) loadStoredAuth(ctx context.Context) {
	token, hasToken := a.kv.Get(ctx, TokenKey)
	raw, hasUser := a.kv.Get(ctx, UserKey)
	if !hasToken || token == "" || !hasUser {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		a.logger.Printf("⚠️ Error parsing stored user: %v", err)
		a.Logout(ctx)
		return
	}
	a.user.Next(&user)
}

// Login guarda token y usuario. Si el usuario no trae roles se leen del token.
func (a *Auth) Login(ctx context.Context, token string, user models.User) models.User {
	if len(user.Roles) == 0 {
		user.Roles = RolesFromToken(token)
	}
	if user.Roles == nil {
		user.Roles = []string{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		a.logger.Printf("⚠️ Error saving user: %v", err)
		return user
	}
	a.kv.Set(ctx, TokenKey, token)
	a.kv.Set(ctx, UserKey, string(data))
	a.user.Next(&user)
	return user
}

// Logout elimina el token y el usuario
func (a *Auth) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.kv.Remove(ctx, TokenKey)
	a.kv.Remove(ctx, UserKey)
	a.user.Next(nil)
}

// Token retorna el token guardado
func (a *Auth) Token(ctx context.Context) (string, bool) {
	token, ok := a.kv.Get(ctx, TokenKey)
	return token, ok && token != ""
}

// User expone el usuario actual (nil sin sesión)
func (a *Auth) User() reactive.Observable[*models.User] {
	return a.user
}

// CurrentUser retorna una copia del usuario actual
func (a *Auth) CurrentUser() (models.User, bool) {
	u := a.user.Value()
	if u == nil {
		return models.User{}, false
	}
	return *u, true
}

func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.Token(ctx)
	return ok
}

func (a *Auth) IsAdmin() bool {
	u, ok := a.CurrentUser()
	return ok && slices.Contains(u.Roles, RoleAdmin)
}

// RolesFromToken lee los roles de los claims del JWT sin verificar la firma
func RolesFromToken(token string) []string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	for _, key := range []string{"roles", "authorities"} {
		switch v := claims[key].(type) {
		case []any:
			roles := make([]string, 0, len(v))
			for _, r := range v {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
			return roles
		case string:
			return []string{v}
		}
	}
	if role, ok := claims["role"].(string); ok {
		return []string{role}
	}
	return nil
}
