package handler

import (
	"net/http"

	"go-voice-call-reminder/internal/usecase"
	"go-voice-call-reminder/pkg/response"
)

type CallHandler struct {
	schedulerUsecase usecase.CallSchedulerUsecase
}

func NewCallHandler(schedulerUsecase usecase.CallSchedulerUsecase) *CallHandler {
	return &CallHandler{
		schedulerUsecase: schedulerUsecase,
	}
}

// MakeCalls schedules one call per booked appointment. The dispatchers fire
// in the background; the response only reports what was scheduled or
// skipped.
func (h *CallHandler) MakeCalls(w http.ResponseWriter, r *http.Request) {
	summary, err := h.schedulerUsecase.MakeCalls(r.Context())
	if err != nil {
		response.InternalServerError(w, "Database error: "+err.Error())
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// ScheduleMedicineCalls expands reminder-enabled prescriptions into future
// call occurrences and schedules each one.
func (h *CallHandler) ScheduleMedicineCalls(w http.ResponseWriter, r *http.Request) {
	summary, err := h.schedulerUsecase.ScheduleMedicineCalls(r.Context())
	if err != nil {
		response.InternalServerError(w, "Database error: "+err.Error())
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
