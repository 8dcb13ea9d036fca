package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	httperr "github.com/spendlens/spendlens/internal/core/errors"
)

// ownerKey is the gin context key holding the authenticated owner id.
const ownerKey = "auth.owner_id"

// devUserHeader names the header trusted when verification is disabled.
const devUserHeader = "X-User-ID"

// Middleware authenticates requests against the identity gateway. Token
// issuance lives outside this service; we only verify. The signing key is
// injected explicitly — there is no environment fallback and no default
// secret.
type Middleware struct {
	secret   []byte
	disabled bool
}

func NewMiddleware(jwtSecret string, disabled bool) *Middleware {
	return &Middleware{secret: []byte(jwtSecret), disabled: disabled}
}

// RequireOwner verifies the Bearer token and stores its subject claim as the
// owner id for downstream handlers. Unauthenticated requests are rejected
// with 401 before any handler runs.
func (m *Middleware) RequireOwner(c *gin.Context) {
	if m.disabled {
		owner := c.GetHeader(devUserHeader)
		if owner == "" {
			abortUnauthorized(c, "missing "+devUserHeader+" header")
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		abortUnauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		abortUnauthorized(c, "invalid Authorization header")
		return
	}

	owner, err := m.verify(parts[1])
	if err != nil {
		slog.Warn("Token verification failed", "error", err)
		abortUnauthorized(c, "invalid or expired token")
		return
	}

	c.Set(ownerKey, owner)
	c.Next()
}

// verify parses the token, enforcing HS256 and a non-empty subject.
func (m *Middleware) verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return subject, nil
}

// Owner returns the authenticated owner id set by RequireOwner.
func Owner(c *gin.Context) string {
	owner, _ := c.Get(ownerKey)
	s, _ := owner.(string)
	return s
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
		ErrorType: httperr.HttpUnauthorizedError,
		Message:   message,
	})
}
