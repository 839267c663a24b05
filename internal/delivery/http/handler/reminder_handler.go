package handler

import (
	"net/http"

	"sgtpi-agenda/internal/delivery/dto"
	"sgtpi-agenda/internal/usecase"
	"sgtpi-agenda/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ReminderHandler struct {
	reminderUsecase usecase.ReminderUsecase
}

func NewReminderHandler(reminderUsecase usecase.ReminderUsecase) *ReminderHandler {
	return &ReminderHandler{reminderUsecase: reminderUsecase}
}

// Cancel resolves the link embedded in a reminder email. It always answers
// 200 with a tagged status so the frontend can render the result page.
func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reminderID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.JSON(w, http.StatusOK, dto.ReminderCancelResponse{
			Status:  dto.ReminderResultError,
			Message: "Recordatorio no encontrado.",
		})
		return
	}

	result, err := h.reminderUsecase.CancelFromReminder(r.Context(), reminderID)
	if err != nil {
		response.InternalServerError(w, "Failed to cancel from reminder")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
