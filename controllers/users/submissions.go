package users

import (
	"net/http"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/utils"
)

type SubmitRequest struct {
	TaskID  uint   `json:"task_id" validate:"required"`
	Details string `json:"details" validate:"required"`
}

// SubmitHandler lets a worker claim one slot of a task. POST /submissions.
func (c *Controller) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req SubmitRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	name := ""
	if user, err := c.Accounts.ByEmail(email); err == nil {
		name = user.Name
	}

	sub, err := c.Submissions.Submit(req.TaskID, email, name, req.Details)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to create submission")
		return
	}
	// A slot was consumed, the open listing is stale.
	_ = utils.DeleteCache(r.Context(), c.Redis, controllers.OpenTasksCacheKey)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Submission created",
		Data:    sub,
	})
}

// MySubmissionsHandler lists the caller's submissions. GET /my-submissions.
func (c *Controller) MySubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	page, limit := controllers.ParsePagination(r, 10)
	subs, total, err := c.Submissions.ByWorker(email, page, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list submissions")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    controllers.Paginated(subs, page, limit, total),
	})
}
