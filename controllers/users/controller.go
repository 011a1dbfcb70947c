package users

import (
	"microjob/store"

	"github.com/redis/go-redis/v9"
)

// Controller serves the worker-facing surface: open tasks, submissions,
// withdrawals, notifications, profile.
type Controller struct {
	Accounts      *store.AccountStore
	Tasks         *store.TaskStore
	Submissions   *store.SubmissionStore
	Withdrawals   *store.WithdrawalStore
	Notifications *store.NotificationStore
	Redis         *redis.Client
}

func NewController(
	accounts *store.AccountStore,
	tasks *store.TaskStore,
	submissions *store.SubmissionStore,
	withdrawals *store.WithdrawalStore,
	notifications *store.NotificationStore,
	rdb *redis.Client,
) *Controller {
	return &Controller{
		Accounts:      accounts,
		Tasks:         tasks,
		Submissions:   submissions,
		Withdrawals:   withdrawals,
		Notifications: notifications,
		Redis:         rdb,
	}
}
