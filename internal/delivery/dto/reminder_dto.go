package dto

// ReminderCancelResponse is a tagged result: the boundary renders it with a
// 200 even when the cancellation window already expired, because an expired
// window is an answer, not a failure.
type ReminderCancelResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	ReminderResultSuccess = "success"
	ReminderResultError   = "error"
)
