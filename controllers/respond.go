package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"microjob/store"
	"microjob/utils"

	"github.com/sirupsen/logrus"
)

// OpenTasksCacheKey is the redis key for the cached open-task listing. Any
// handler that changes a slot count deletes it.
const OpenTasksCacheKey = "tasks:open"

// WriteStoreError maps store sentinel errors onto HTTP responses. Unknown
// errors are logged and reported as a generic 500 with the fallback message.
func WriteStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Not found"})
	case errors.Is(err, store.ErrForbidden):
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Forbidden"})
	case errors.Is(err, store.ErrInvalidInput):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, store.ErrInsufficientBalance):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
	case errors.Is(err, store.ErrNoSlotsAvailable):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "No worker slots available"})
	case errors.Is(err, store.ErrAlreadyProcessed):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Already processed"})
	default:
		logrus.WithError(err).Error(fallback)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: fallback})
	}
}

// ParsePagination reads page/limit query params with sane defaults.
func ParsePagination(r *http.Request, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// Paginated wraps a listing with its pagination envelope.
func Paginated(data interface{}, page, limit int, total int64) map[string]interface{} {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return map[string]interface{}{
		"data": data,
		"pagination": map[string]interface{}{
			"page":        page,
			"limit":       limit,
			"total_rows":  total,
			"total_pages": totalPages,
		},
	}
}
