package users

import (
	"net/http"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/utils"
)

type WithdrawalRequest struct {
	WithdrawalCoin float64 `json:"withdrawal_coin" validate:"required,gt0"`
	WithdrawalCash float64 `json:"withdrawal_cash" validate:"required,gt0"`
	PaymentSystem  string  `json:"payment_system" validate:"required,max=50"`
	AccountNumber  string  `json:"account_number" validate:"required,max=100"`
}

// WithdrawalHandler escrows coins and records a pending payout request.
// POST /withdrawals.
func (c *Controller) WithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req WithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	name := ""
	if user, err := c.Accounts.ByEmail(email); err == nil {
		name = user.Name
	}

	wd, err := c.Withdrawals.Request(email, name, req.WithdrawalCoin, req.WithdrawalCash,
		req.PaymentSystem, req.AccountNumber)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to create withdrawal request")
		return
	}

	balance, _ := c.Accounts.Balance(email)
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal requested, coins held in escrow",
		Data: map[string]interface{}{
			"withdrawal": wd,
			"balance":    balance,
		},
	})
}

// ListWithdrawalHandler lists the caller's withdrawal requests.
// GET /withdrawals.
func (c *Controller) ListWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	page, limit := controllers.ParsePagination(r, 10)
	wds, total, err := c.Withdrawals.ByWorker(email, page, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list withdrawals")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    controllers.Paginated(wds, page, limit, total),
	})
}
