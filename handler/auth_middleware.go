package handler

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"tailorpro/common"
	"tailorpro/model"
	"tailorpro/service"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserRolesKey contextKey = "userRoles"
)

// AuthMiddleware rejects requests without a valid bearer access token and
// puts the caller's id and roles into the request context.
func AuthMiddleware(issuer *service.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "No authentication credentials were provided.", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			claims, err := issuer.ParseAccessToken(headerParts[1])
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "The access token is invalid or expired.", nil)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRolesKey, claims.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r.Context()) {
			err := common.NewAppError(http.StatusForbidden, "Access denied. Administrator role required.", nil)
			err.Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAdmin(ctx context.Context) bool {
	roles, _ := ctx.Value(UserRolesKey).([]string)
	return slices.Contains(roles, model.RoleAdministrator)
}
