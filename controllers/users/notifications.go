package users

import (
	"net/http"
	"strconv"

	"microjob/controllers"
	"microjob/utils"

	"github.com/gorilla/mux"
)

// NotificationsHandler lists the caller's notifications newest-first.
// GET /notifications.
func (c *Controller) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := c.Notifications.ListFor(email, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list notifications")
		return
	}
	unread, _ := c.Notifications.UnreadCount(email)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"notifications": list,
			"unread":        unread,
		},
	})
}

// MarkNotificationReadHandler flips the read flag on one notification.
// PATCH /notifications/{id}/read.
func (c *Controller) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid notification id"})
		return
	}
	if err := c.Notifications.MarkRead(uint(id), email); err != nil {
		controllers.WriteStoreError(w, err, "Failed to mark notification read")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notification marked read"})
}
