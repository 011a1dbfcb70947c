package buyers

import (
	"net/http"
	"strconv"
	"time"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/models"
	"microjob/store"
	"microjob/utils"

	"github.com/gorilla/mux"
)

type AddTaskRequest struct {
	Title           string  `json:"title" validate:"required,max=191"`
	Detail          string  `json:"detail" validate:"required"`
	SubmissionInfo  string  `json:"submission_info" validate:"required"`
	RequiredWorkers int64   `json:"required_workers" validate:"required,gt0"`
	PayableAmount   float64 `json:"payable_amount" validate:"required,gt0"`
	CompletionDate  string  `json:"completion_date"`
}

// AddTaskHandler posts a new task with open worker slots. POST /add-task.
func (c *Controller) AddTaskHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req AddTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var completion *time.Time
	if req.CompletionDate != "" {
		t, err := time.Parse(time.RFC3339, req.CompletionDate)
		if err != nil {
			if t, err = time.Parse("2006-01-02", req.CompletionDate); err != nil {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "completion_date must be RFC3339 or YYYY-MM-DD"})
				return
			}
		}
		completion = &t
	}

	name := ""
	if user, err := c.Accounts.ByEmail(email); err == nil {
		name = user.Name
	}

	task := models.Task{
		BuyerEmail:      email,
		BuyerName:       name,
		Title:           req.Title,
		Detail:          req.Detail,
		SubmissionInfo:  req.SubmissionInfo,
		RequiredWorkers: req.RequiredWorkers,
		PayableAmount:   req.PayableAmount,
		CompletionDate:  completion,
	}
	if err := c.Tasks.Create(&task); err != nil {
		controllers.WriteStoreError(w, err, "Failed to create task")
		return
	}
	_ = utils.DeleteCache(r.Context(), c.Redis, controllers.OpenTasksCacheKey)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Task created",
		Data:    task,
	})
}

// MyTasksHandler lists the caller's own tasks. GET /my-tasks.
func (c *Controller) MyTasksHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := utils.GetUserEmail(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	tasks, err := c.Tasks.ListByBuyer(email)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list tasks")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: tasks})
}

type UpdateTaskRequest struct {
	Title          string `json:"title" validate:"max=191"`
	Detail         string `json:"detail"`
	SubmissionInfo string `json:"submission_info"`
	CompletionDate string `json:"completion_date"`
}

// UpdateTaskHandler edits the descriptive fields of an owned task.
// PATCH /tasks/{id}.
func (c *Controller) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
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
	var req UpdateTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	upd := store.TaskUpdate{
		Title:          req.Title,
		Detail:         req.Detail,
		SubmissionInfo: req.SubmissionInfo,
	}
	if req.CompletionDate != "" {
		t, err := time.Parse(time.RFC3339, req.CompletionDate)
		if err != nil {
			if t, err = time.Parse("2006-01-02", req.CompletionDate); err != nil {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "completion_date must be RFC3339 or YYYY-MM-DD"})
				return
			}
		}
		upd.CompletionDate = &t
	}
	task, err := c.Tasks.Update(uint(id), email, false, upd)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to update task")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task updated", Data: task})
}

// DeleteTaskHandler removes an owned task. DELETE /tasks/{id}.
func (c *Controller) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Tasks.Delete(uint(id), email, false); err != nil {
		controllers.WriteStoreError(w, err, "Failed to delete task")
		return
	}
	_ = utils.DeleteCache(r.Context(), c.Redis, controllers.OpenTasksCacheKey)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}

// UploadTaskImageHandler attaches an image to an owned task.
// POST /tasks/{id}/image, multipart field "image".
func (c *Controller) UploadTaskImageHandler(w http.ResponseWriter, r *http.Request) {
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
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "image file is required"})
		return
	}
	defer file.Close()

	url, err := utils.UploadTaskImage(r.Context(), uint(id), header.Filename, file)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to upload image"})
		return
	}
	task, err := c.Tasks.SetImageURL(uint(id), email, false, url)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to save image URL")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Image uploaded", Data: task})
}
