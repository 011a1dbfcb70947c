package auth

import (
	"net/http"
	"os"
	"time"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/models"
	"microjob/store"
	"microjob/utils"

	"gorm.io/gorm"
)

// Session lifetime matches the long-lived cookie the browser client expects.
const sessionTTL = 365 * 24 * time.Hour

type Controller struct {
	DB       *gorm.DB
	Accounts *store.AccountStore
}

func NewController(db *gorm.DB, accounts *store.AccountStore) *Controller {
	return &Controller{DB: db, Accounts: accounts}
}

type SessionRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=100"`
	Role  string `json:"role" validate:"role"`
}

// SessionHandler issues the session token for an email, creating the account
// on first login (with its one-time signup bonus). POST /jwt.
func (c *Controller) SessionHandler(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var setting models.Setting
	if err := c.DB.First(&setting).Error; err == nil && setting.Maintenance {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Message: "Service is under maintenance, please try again later",
		})
		return
	}

	user, created, err := c.Accounts.UpsertOnLogin(req.Email, req.Name, req.Role)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to create session")
		return
	}

	token, err := utils.GenerateAccessToken(user.Email, user.Role, sessionTTL)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to create session")
		return
	}

	production := os.Getenv("ENV") == "production"
	sameSite := http.SameSiteStrictMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, utils.APIResponse{
		Success: true,
		Message: "Session created",
		Data: map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// LogoutHandler clears the session cookie and blacklists the token's jti for
// the remainder of its lifetime. GET /logout.
func (c *Controller) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if tokenStr, err := utils.TokenFromRequest(r); err == nil {
		if claims, err := utils.ValidateAccessToken(tokenStr); err == nil {
			jti, _ := claims["jti"].(string)
			ttl := sessionTTL
			if exp, ok := claims["exp"].(float64); ok {
				if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
					ttl = until
				}
			}
			_ = utils.RevokeJTI(jti, ttl)
		}
	}

	production := os.Getenv("ENV") == "production"
	sameSite := http.SameSiteStrictMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
		MaxAge:   -1,
	})
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
