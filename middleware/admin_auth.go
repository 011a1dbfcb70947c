package middleware

import (
	"context"
	"net/http"

	"microjob/models"
	"microjob/utils"

	"gorm.io/gorm"
)

// AdminAuthMiddleware verifies that the request carries an admin token and
// that the admin account still exists and is active. The storage handle is
// passed in explicitly rather than read from a package global.
func AdminAuthMiddleware(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, role, err := utils.IdentityFromRequest(r)
			if err != nil {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized: invalid token",
				})
				return
			}
			if role != models.RoleAdmin {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "Forbidden: admin access required",
				})
				return
			}

			var admin models.Admin
			if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized: admin not found",
				})
				return
			}
			if !admin.IsActive {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Forbidden"})
				return
			}

			ctx := context.WithValue(r.Context(), utils.UserEmailKey, email)
			ctx = context.WithValue(ctx, utils.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
