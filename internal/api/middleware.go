package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cyclesync/domain/core"
	"cyclesync/internal"
	"cyclesync/internal/config"
	"cyclesync/internal/errors"
)

var logger = internal.DefaultLogger

const sharedSecretHeader = "X-Shared-Secret"

// RequireSharedSecret admits a request only when it carries the
// configured shared secret in X-Shared-Secret. When no secret is
// configured, every request is admitted.
func RequireSharedSecret(cfg config.SecretConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.SharedSecret == "" {
			c.Next()
			return
		}
		if c.GetHeader(sharedSecretHeader) != cfg.SharedSecret {
			logger.Warn("rejected request from %s: missing or invalid shared secret", c.ClientIP())
			respondError(c, errors.Unauthorized("missing or invalid shared secret"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORS answers preflight requests and stamps CORS headers on every
// response, restricted to the configured allowed origins (or "*" when
// none are configured).
func CORS(cfg config.SecretConfig) gin.HandlerFunc {
	allowed := map[string]bool{}
	allowAll := len(cfg.AllowedOrigins) == 0
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+sharedSecretHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// respondError translates an AppError (or any error) into a JSON
// error response with a status derived from the error's code.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsValidationError(err), core.IsInsufficientDataError(err):
		status = http.StatusBadRequest
	case errors.IsAppError(err):
		switch errors.GetCode(err) {
		case errors.CodeInvalidInput, errors.CodeValidationError:
			status = http.StatusBadRequest
		case errors.CodeUnauthorized:
			status = http.StatusUnauthorized
		case errors.CodeNotFound:
			status = http.StatusNotFound
		}
	}
	c.JSON(status, gin.H{"error": strings.TrimSpace(err.Error())})
}
