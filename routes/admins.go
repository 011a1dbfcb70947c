package routes

import (
	"net/http"
	"time"

	"microjob/middleware"

	"github.com/gorilla/mux"
)

// registerAdminRoutes wires the back-office surface behind AdminAuthMiddleware,
// which re-checks the admins table on every request so a deactivated admin
// loses access immediately.
func registerAdminRoutes(api *mux.Router, d Deps) {
	adminLoginLimiter := middleware.NewIPRateLimiter(10, 5*time.Minute)
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(d.Admins.LoginHandler))).Methods(http.MethodPost)

	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(d.DB))
	admin.Handle("/admin/users", http.HandlerFunc(d.Admins.UsersHandler)).Methods(http.MethodGet)
	admin.Handle("/admin/users/{email}/role", http.HandlerFunc(d.Admins.SetRoleHandler)).Methods(http.MethodPatch)
	admin.Handle("/admin/users/{email}", http.HandlerFunc(d.Admins.DeleteUserHandler)).Methods(http.MethodDelete)
	admin.Handle("/admin/withdrawals", http.HandlerFunc(d.Admins.WithdrawalsHandler)).Methods(http.MethodGet)
	admin.Handle("/admin/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(d.Admins.ApproveWithdrawalHandler)).Methods(http.MethodPatch)
	admin.Handle("/admin/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(d.Admins.RejectWithdrawalHandler)).Methods(http.MethodPatch)
	admin.Handle("/admin/tasks", http.HandlerFunc(d.Admins.TasksHandler)).Methods(http.MethodGet)
	admin.Handle("/admin/tasks/{id:[0-9]+}", http.HandlerFunc(d.Admins.DeleteTaskHandler)).Methods(http.MethodDelete)
	admin.Handle("/admin/stats", http.HandlerFunc(d.Admins.StatsHandler)).Methods(http.MethodGet)
}
