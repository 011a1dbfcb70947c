package middleware

import (
	"context"
	"net/http"
	"strings"

	"microjob/utils"
)

// AuthMiddleware validates the session token (cookie or bearer) and stores the
// caller's email and role in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, role, err := utils.IdentityFromRequest(r)
		if err != nil {
			msg := "Unauthorized"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Unauthorized: token expired"
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: msg})
			return
		}
		ctx := context.WithValue(r.Context(), utils.UserEmailKey, email)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole short-circuits with 403 before any store mutation when the
// authenticated caller has none of the allowed roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetUserRole(r)
			if !ok {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: requires role " + strings.Join(roles, " or "),
			})
		})
	}
}
