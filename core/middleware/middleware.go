package middleware

import (
	"context"
	"strings"

	"meetwise/core/cache"
	"meetwise/core/constants"
	"meetwise/core/controller"
	"meetwise/core/errors"
	"meetwise/core/logger"
	"meetwise/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles request middlewares that need shared dependencies
type Middleware struct {
	cache cache.ICache
}

func NewMiddleware(c cache.ICache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the Bearer JWT and stores claims on the context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			token := parts[1]

			blacklisted, err := m.isTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", "error", err)
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:ValidateAndParseToken", "error", err)
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

func (m *Middleware) isTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if m.cache == nil {
		return false, nil
	}
	var revoked bool
	found, err := m.cache.Get(ctx, constants.RedisKeyTokenBlacklist+token, &revoked)
	if err != nil {
		return false, err
	}
	return found && revoked, nil
}
