package admins

import (
	"microjob/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Controller serves the back-office surface: admin login, user management,
// withdrawal review, platform stats.
type Controller struct {
	DB          *gorm.DB
	Accounts    *store.AccountStore
	Tasks       *store.TaskStore
	Submissions *store.SubmissionStore
	Withdrawals *store.WithdrawalStore
	Redis       *redis.Client
}

func NewController(
	db *gorm.DB,
	accounts *store.AccountStore,
	tasks *store.TaskStore,
	submissions *store.SubmissionStore,
	withdrawals *store.WithdrawalStore,
	rdb *redis.Client,
) *Controller {
	return &Controller{
		DB:          db,
		Accounts:    accounts,
		Tasks:       tasks,
		Submissions: submissions,
		Withdrawals: withdrawals,
		Redis:       rdb,
	}
}
