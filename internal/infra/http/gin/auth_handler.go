package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"resortdesk/internal/infra/security"
	"resortdesk/internal/infra/sessions"
)

// AuthHandler exchanges operator credentials for an opaque session token.
type AuthHandler struct {
	AdminEmail        string
	AdminPasswordHash string
	Hasher            security.BcryptHasher
	Tokens            security.RandomTokenGenerator
	Sessions          sessions.Store
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !strings.EqualFold(req.Email, h.AdminEmail) ||
		h.Hasher.Compare(h.AdminPasswordHash, req.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := h.Tokens.NewToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	session := sessions.Session{Token: token, Email: h.AdminEmail}
	if err := h.Sessions.Put(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		_ = h.Sessions.Delete(c.Request.Context(), token)
	}
	c.Status(http.StatusNoContent)
}

// Authentication returns the middleware guarding the API routes. The session
// is the capability object handlers may consult; no global admin state.
func Authentication(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		session, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Set("session", session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

var _ AuthHTTP = AuthHandler{}
