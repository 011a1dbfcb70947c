package admins

import (
	"net/http"

	"microjob/controllers"
	"microjob/models"
	"microjob/utils"
)

// StatsHandler returns platform totals for the admin dashboard.
// GET /admin/stats.
func (c *Controller) StatsHandler(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := c.Accounts.Count("")
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to compute stats")
		return
	}
	buyers, _ := c.Accounts.Count(models.RoleBuyer)
	workers, _ := c.Accounts.Count(models.RoleWorker)
	totalCoins, err := c.Accounts.TotalCoins()
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to compute stats")
		return
	}
	pendingEscrow, err := c.Withdrawals.PendingEscrowTotal()
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to compute stats")
		return
	}
	var totalTasks int64
	if err := c.DB.Model(&models.Task{}).Count(&totalTasks).Error; err != nil {
		controllers.WriteStoreError(w, err, "Failed to compute stats")
		return
	}
	var pendingSubs int64
	_ = c.DB.Model(&models.Submission{}).Where("status = ?", models.StatusPending).Count(&pendingSubs).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"total_users":         totalUsers,
			"buyers":              buyers,
			"workers":             workers,
			"total_coins":         totalCoins,
			"pending_escrow":      pendingEscrow,
			"total_tasks":         totalTasks,
			"pending_submissions": pendingSubs,
		},
	})
}
