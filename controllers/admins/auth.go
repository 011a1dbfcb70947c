package admins

import (
	"net/http"
	"time"

	"microjob/middleware"
	"microjob/models"
	"microjob/utils"

	"github.com/sirupsen/logrus"
)

const adminTokenTTL = 12 * time.Hour

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler authenticates an admin by username and password and issues a
// short-lived admin token. POST /admin/login.
func (c *Controller) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.Admin
	if err := c.DB.Where("username = ? AND is_active = ?", req.Username, true).
		First(&admin).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
		return
	}
	if !admin.ValidatePassword(req.Password) {
		logrus.WithField("username", req.Username).Warn("admin login failed")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := utils.GenerateAccessToken(admin.Email, models.RoleAdmin, adminTokenTTL)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to issue token"})
		return
	}
	logrus.WithField("username", admin.Username).Info("admin logged in")
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}
