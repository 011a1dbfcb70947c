package buyers

import (
	"microjob/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Controller serves the buyer surface: posting tasks, reviewing submissions,
// buying coins.
type Controller struct {
	DB            *gorm.DB
	Accounts      *store.AccountStore
	Tasks         *store.TaskStore
	Submissions   *store.SubmissionStore
	Notifications *store.NotificationStore
	Redis         *redis.Client
}

func NewController(
	db *gorm.DB,
	accounts *store.AccountStore,
	tasks *store.TaskStore,
	submissions *store.SubmissionStore,
	notifications *store.NotificationStore,
	rdb *redis.Client,
) *Controller {
	return &Controller{
		DB:            db,
		Accounts:      accounts,
		Tasks:         tasks,
		Submissions:   submissions,
		Notifications: notifications,
		Redis:         rdb,
	}
}
