package buyers

import (
	"net/http"
	"strconv"

	"microjob/controllers"
	"microjob/utils"

	"github.com/gorilla/mux"
)

// PendingSubmissionsHandler lists pending submissions across the caller's
// tasks, oldest first so the review queue is FIFO. GET /pending-submissions.
func (c *Controller) PendingSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	subs, err := c.Submissions.PendingForBuyer(email)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list pending submissions")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: subs})
}

// TaskSubmissionsHandler lists every submission for one owned task.
// GET /tasks/{id}/submissions.
func (c *Controller) TaskSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	subs, err := c.Submissions.ByTask(uint(id), email, false)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list submissions")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: subs})
}

// ApproveSubmissionHandler approves a pending submission and credits the
// worker. PATCH /submissions/{id}/approve.
func (c *Controller) ApproveSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}
	sub, err := c.Submissions.Approve(uint(id), email)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to approve submission")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission approved, worker credited", Data: sub})
}

// RejectSubmissionHandler rejects a pending submission and returns the slot to
// the task. PATCH /submissions/{id}/reject.
func (c *Controller) RejectSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}
	sub, err := c.Submissions.Reject(uint(id), email)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to reject submission")
		return
	}
	// The returned slot makes the task visible in the open listing again.
	_ = utils.DeleteCache(r.Context(), c.Redis, controllers.OpenTasksCacheKey)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission rejected, slot returned", Data: sub})
}
