package users

import (
	"net/http"

	"microjob/controllers"
	"microjob/utils"
)

// InfoHandler returns the caller's account including coin balance.
// GET /users/info.
func (c *Controller) InfoHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	user, err := c.Accounts.ByEmail(email)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to fetch account")
		return
	}
	unread, _ := c.Notifications.UnreadCount(email)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user":                 user,
			"unread_notifications": unread,
		},
	})
}

// TransactionsHandler returns the caller's ledger history newest-first.
// GET /users/transactions.
func (c *Controller) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	page, limit := controllers.ParsePagination(r, 20)
	txs, total, err := c.Accounts.Transactions(email, page, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list transactions")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    controllers.Paginated(txs, page, limit, total),
	})
}
