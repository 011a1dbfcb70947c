package admins

import (
	"net/http"
	"strconv"

	"microjob/controllers"
	"microjob/utils"

	"github.com/gorilla/mux"
)

// WithdrawalsHandler lists withdrawal requests, optionally filtered with
// ?status=pending|approved|rejected. GET /admin/withdrawals.
func (c *Controller) WithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := controllers.ParsePagination(r, 20)
	status := r.URL.Query().Get("status")
	wds, total, err := c.Withdrawals.List(status, page, limit)
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

// ApproveWithdrawalHandler marks a pending withdrawal approved. The escrowed
// coins stay debited; the operator pays out off-platform.
// PATCH /admin/withdrawals/{id}/approve.
func (c *Controller) ApproveWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	adminEmail, _ := utils.GetUserEmail(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}
	wd, err := c.Withdrawals.Approve(uint(id), adminEmail)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to approve withdrawal")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal approved", Data: wd})
}

// RejectWithdrawalHandler marks a pending withdrawal rejected and refunds the
// escrow. PATCH /admin/withdrawals/{id}/reject.
func (c *Controller) RejectWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	adminEmail, _ := utils.GetUserEmail(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}
	wd, err := c.Withdrawals.Reject(uint(id), adminEmail)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to reject withdrawal")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal rejected, escrow refunded", Data: wd})
}
