package buyers

import (
	"fmt"
	"net/http"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/models"
	"microjob/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CoinPackagesHandler lists the purchasable coin bundles. GET /coin-packages.
func (c *Controller) CoinPackagesHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    models.CoinPackages,
	})
}

type CreatePaymentIntentRequest struct {
	Coins int64 `json:"coins" validate:"required,gt0"`
}

// CreatePaymentIntentHandler records a purchase intent for a known coin
// package and hands the client a secret to complete the charge with.
// POST /create-payment-intent.
func (c *Controller) CreatePaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req CreatePaymentIntentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	pkg, ok := models.FindCoinPackage(req.Coins)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown coin package"})
		return
	}

	payment := models.Payment{
		UserEmail:    email,
		Coins:        pkg.Coins,
		AmountCents:  pkg.AmountCents,
		ClientSecret: uuid.NewString(),
		Status:       "created",
	}
	if err := c.DB.Create(&payment).Error; err != nil {
		controllers.WriteStoreError(w, err, "Failed to create payment intent")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Payment intent created",
		Data: map[string]interface{}{
			"client_secret": payment.ClientSecret,
			"coins":         payment.Coins,
			"amount_cents":  payment.AmountCents,
		},
	})
}

type SavePurchaseRequest struct {
	ClientSecret string `json:"client_secret" validate:"required"`
}

// SavePurchaseHandler credits the purchased coins after the client completes
// the charge. The conditional status flip makes replays harmless: only the
// request that moves created to succeeded credits coins. POST /save-purchase.
func (c *Controller) SavePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req SavePurchaseRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var payment models.Payment
	if err := c.DB.Where("client_secret = ? AND user_email = ?", req.ClientSecret, email).
		First(&payment).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payment not found"})
		return
	}

	res := c.DB.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, "created").
		Update("status", "succeeded")
	if res.Error != nil {
		controllers.WriteStoreError(w, res.Error, "Failed to record purchase")
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Purchase already recorded"})
		return
	}

	user, err := c.Accounts.AdjustBalance(email, float64(payment.Coins), models.TxPurchase,
		payment.ClientSecret, fmt.Sprintf("Purchased %d coins", payment.Coins))
	if err != nil {
		// Put the intent back so the client can retry the credit.
		if rerr := c.DB.Model(&models.Payment{}).Where("id = ?", payment.ID).
			Update("status", "created").Error; rerr != nil {
			logrus.WithError(rerr).WithField("payment_id", payment.ID).
				Error("failed to revert payment status after credit failure")
		}
		controllers.WriteStoreError(w, err, "Failed to credit coins")
		return
	}

	n := models.Notification{
		ToEmail:     email,
		FromEmail:   "system",
		Message:     fmt.Sprintf("Purchase complete, %d coins added to your balance", payment.Coins),
		Type:        models.NotificationPurchase,
		ActionRoute: "/users/transactions",
	}
	if err := c.Notifications.Record(&n); err != nil {
		logrus.WithError(err).Warn("purchase notification dropped")
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Purchase recorded, coins credited",
		Data: map[string]interface{}{
			"coins":   payment.Coins,
			"balance": user.Coin,
		},
	})
}
