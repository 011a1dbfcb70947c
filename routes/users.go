package routes

import (
	"net/http"
	"time"

	"microjob/middleware"
	"microjob/models"

	"github.com/gorilla/mux"
)

// registerUserRoutes wires the marketplace surface: session, public task
// browsing, worker actions, buyer actions.
func registerUserRoutes(api *mux.Router, d Deps) {
	// Session issuance is the abuse magnet, keep it tightly limited.
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)

	// Public
	api.Handle("/jwt", loginLimiter.Middleware(http.HandlerFunc(d.Auth.SessionHandler))).Methods(http.MethodPost)
	api.Handle("/logout", http.HandlerFunc(d.Auth.LogoutHandler)).Methods(http.MethodGet)
	api.Handle("/tasks", http.HandlerFunc(d.Users.TaskListHandler)).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(d.Users.TaskDetailHandler)).Methods(http.MethodGet)
	api.Handle("/coin-packages", http.HandlerFunc(d.Buyers.CoinPackagesHandler)).Methods(http.MethodGet)

	// Any authenticated user
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware)
	authed.Handle("/users/info", http.HandlerFunc(d.Users.InfoHandler)).Methods(http.MethodGet)
	authed.Handle("/users/transactions", http.HandlerFunc(d.Users.TransactionsHandler)).Methods(http.MethodGet)
	authed.Handle("/notifications", http.HandlerFunc(d.Users.NotificationsHandler)).Methods(http.MethodGet)
	authed.Handle("/notifications/{id:[0-9]+}/read", http.HandlerFunc(d.Users.MarkNotificationReadHandler)).Methods(http.MethodPatch)

	// Worker-only
	worker := api.NewRoute().Subrouter()
	worker.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleWorker))
	worker.Handle("/submissions", http.HandlerFunc(d.Users.SubmitHandler)).Methods(http.MethodPost)
	worker.Handle("/my-submissions", http.HandlerFunc(d.Users.MySubmissionsHandler)).Methods(http.MethodGet)
	worker.Handle("/withdrawals", http.HandlerFunc(d.Users.WithdrawalHandler)).Methods(http.MethodPost)
	worker.Handle("/withdrawals", http.HandlerFunc(d.Users.ListWithdrawalHandler)).Methods(http.MethodGet)

	// Buyer-only
	buyer := api.NewRoute().Subrouter()
	buyer.Use(middleware.AuthMiddleware, middleware.RequireRole(models.RoleBuyer))
	buyer.Handle("/add-task", http.HandlerFunc(d.Buyers.AddTaskHandler)).Methods(http.MethodPost)
	buyer.Handle("/my-tasks", http.HandlerFunc(d.Buyers.MyTasksHandler)).Methods(http.MethodGet)
	buyer.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(d.Buyers.UpdateTaskHandler)).Methods(http.MethodPatch)
	buyer.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(d.Buyers.DeleteTaskHandler)).Methods(http.MethodDelete)
	buyer.Handle("/tasks/{id:[0-9]+}/image", http.HandlerFunc(d.Buyers.UploadTaskImageHandler)).Methods(http.MethodPost)
	buyer.Handle("/tasks/{id:[0-9]+}/submissions", http.HandlerFunc(d.Buyers.TaskSubmissionsHandler)).Methods(http.MethodGet)
	buyer.Handle("/pending-submissions", http.HandlerFunc(d.Buyers.PendingSubmissionsHandler)).Methods(http.MethodGet)
	buyer.Handle("/submissions/{id:[0-9]+}/approve", http.HandlerFunc(d.Buyers.ApproveSubmissionHandler)).Methods(http.MethodPatch)
	buyer.Handle("/submissions/{id:[0-9]+}/reject", http.HandlerFunc(d.Buyers.RejectSubmissionHandler)).Methods(http.MethodPatch)
	buyer.Handle("/create-payment-intent", http.HandlerFunc(d.Buyers.CreatePaymentIntentHandler)).Methods(http.MethodPost)
	buyer.Handle("/save-purchase", http.HandlerFunc(d.Buyers.SavePurchaseHandler)).Methods(http.MethodPost)
}
