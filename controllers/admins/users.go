package admins

import (
	"net/http"

	"microjob/controllers"
	"microjob/middleware"
	"microjob/utils"

	"github.com/gorilla/mux"
)

// UsersHandler lists marketplace accounts. GET /admin/users.
func (c *Controller) UsersHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := controllers.ParsePagination(r, 20)
	users, total, err := c.Accounts.List(page, limit)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to list users")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    controllers.Paginated(users, page, limit, total),
	})
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// SetRoleHandler changes an account's role. PATCH /admin/users/{email}/role.
func (c *Controller) SetRoleHandler(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	var req SetRoleRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	user, err := c.Accounts.SetRole(email, req.Role)
	if err != nil {
		controllers.WriteStoreError(w, err, "Failed to update role")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Role updated", Data: user})
}

// DeleteUserHandler removes an account. DELETE /admin/users/{email}.
func (c *Controller) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if err := c.Accounts.Delete(email); err != nil {
		controllers.WriteStoreError(w, err, "Failed to delete user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}
