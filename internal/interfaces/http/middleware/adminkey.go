package middleware

import (
	"github.com/gin-gonic/gin"

	"chroma/internal/shared/constants"
	"chroma/internal/shared/errors"
	"chroma/internal/shared/logger"
	"chroma/internal/shared/utils"
)

// KeyVerifier checks a plaintext key against a stored hash.
// *auth.BcryptKeyHasher satisfies it.
type KeyVerifier interface {
	Verify(key, hash string) error
}

// AdminKeyMiddleware gates the debug endpoints. The routes only exist when
// the debug capability flag is on; this middleware additionally requires the
// X-Admin-Key header to match the configured bcrypt hash.
type AdminKeyMiddleware struct {
	keyHash string
	hasher  KeyVerifier
	logger  logger.Interface
}

func NewAdminKeyMiddleware(keyHash string, hasher KeyVerifier, logger logger.Interface) *AdminKeyMiddleware {
	return &AdminKeyMiddleware{
		keyHash: keyHash,
		hasher:  hasher,
		logger:  logger,
	}
}

func (m *AdminKeyMiddleware) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Missing header, missing hash, and mismatch all answer the same way.
		if m.keyHash == "" {
			m.logger.Warnw("debug endpoints enabled without admin key hash, rejecting",
				"path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("admin key required"))
			c.Abort()
			return
		}

		key := c.GetHeader(constants.HeaderXAdminKey)
		if key == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("admin key required"))
			c.Abort()
			return
		}

		if err := m.hasher.Verify(key, m.keyHash); err != nil {
			m.logger.Warnw("admin key rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("admin key required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
