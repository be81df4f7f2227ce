package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/token"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

// TokenCookie is the cookie the login handler sets for browser clients.
const TokenCookie = "token"

const claimsKey = "auth.claims"

type AuthMiddleware struct {
	logger *zap.Logger
	tokens *token.Manager
}

func NewAuthMiddleware(logger *zap.Logger, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{logger: logger.With(zap.String("middleware", "auth")), tokens: tokens}
}

// RequireAuth rejects requests without a valid token and stores its claims on the context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", token.ErrInvalidToken)
			return
		}

		claims, err := am.tokens.Parse(tokenString)
		if err != nil {
			am.logger.Debug("token rejected", zap.Error(err))
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", token.ErrInvalidToken)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil || !claims.IsAdmin() {
			response.RespondError(c, http.StatusForbidden, "forbidden", entities.ErrForbidden)
			return
		}
		c.Next()
	}
}

// Claims returns the claims stored by RequireAuth, or nil.
func Claims(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
