package admins

import (
	"net/http"
	"strconv"

	"microjob/controllers"
	"microjob/utils"

	"github.com/gorilla/mux"
)

// TasksHandler lists all tasks regardless of remaining slots.
// GET /admin/tasks.
func (c *Controller) TasksHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := controllers.ParsePagination(r, 20)
	tasks, total, err := c.Tasks.ListAll(page, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list tasks")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    controllers.Paginated(tasks, page, limit, total),
	})
}

// DeleteTaskHandler removes any task. DELETE /admin/tasks/{id}.
func (c *Controller) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	adminEmail, _ := utils.GetUserEmail(r)
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	if err := c.Tasks.Delete(uint(id), adminEmail, true); err != nil {
		controllers.WriteStoreError(w, err, "Failed to delete task")
		return
	}
	_ = utils.DeleteCache(r.Context(), c.Redis, controllers.OpenTasksCacheKey)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}
