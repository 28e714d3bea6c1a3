package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"chroma/internal/infrastructure/auth"
	"chroma/internal/shared/constants"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth validates the anonymous bearer credential and stores the
// identity and session IDs on the request context. Clients carry the
// credential in the Authorization header only; there are no cookies.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			// Expiry is routine: credentials live 24h and clients
			// re-authenticate on 401. Anything else may be tampering.
			if stderrors.Is(err, jwt.ErrTokenExpired) {
				utils.ErrorResponseWithError(c, errors.NewTokenExpiredError("credential"))
			} else {
				m.logger.Warnw("failed to verify credential", "error", err, "client_ip", c.ClientIP())
				utils.ErrorResponseWithError(c, errors.NewTokenInvalidError("credential"))
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentityID, claims.UserID)
		c.Set(constants.ContextKeySessionID, claims.SessionID)

		c.Next()
	}
}
