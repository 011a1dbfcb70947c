package users

import (
	"net/http"
	"strconv"
	"time"

	"microjob/controllers"
	"microjob/models"
	"microjob/utils"

	"github.com/gorilla/mux"
)

type taskView struct {
	models.Task
	Status string `json:"status"`
}

func toTaskViews(tasks []models.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, taskView{Task: tasks[i], Status: tasks[i].Status()})
	}
	return views
}

// TaskListHandler returns every task with open worker slots. GET /tasks.
// The listing is cached briefly; any slot change invalidates it.
func (c *Controller) TaskListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var cached []taskView
	if found, err := utils.GetCache(ctx, c.Redis, controllers.OpenTasksCacheKey, &cached); err == nil && found {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: cached})
		return
	}

	tasks, err := c.Tasks.ListOpen()
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list tasks")
		return
	}
	views := toTaskViews(tasks)
	_ = utils.SetCache(ctx, c.Redis, controllers.OpenTasksCacheKey, views, 30*time.Second)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: views})
}

// TaskDetailHandler returns a single task. GET /tasks/{id}.
func (c *Controller) TaskDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	task, err := c.Tasks.ByID(uint(id))
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to fetch task")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    taskView{Task: *task, Status: task.Status()},
	})
}
