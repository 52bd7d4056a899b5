package handler

import (
	"errors"
	"net/http"

	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/usecase"
	"go-voice-call-reminder/pkg/response"
	"go-voice-call-reminder/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")
	if dateStr == "" || timeStr == "" {
		response.Error(w, http.StatusBadRequest, "date and time query parameters are required", nil)
		return
	}

	status, err := h.appointmentUsecase.CheckSlot(r.Context(), dateStr, timeStr)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidTime):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Database error: "+err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot status retrieved successfully", status)
}

func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.appointmentUsecase.AvailableSlots(r.Context(), dateStr)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.InternalServerError(w, "Database error: "+err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// BookAppointment reads the booking from query parameters, matching the
// dashboard's existing call shape. Store failures come back as a soft
// success=false body rather than a 500.
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.BookAppointmentRequest{
		Date:      query.Get("date"),
		Time:      query.Get("time"),
		UserPhone: query.Get("user_phone"),
		Name:      query.Get("name"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.appointmentUsecase.BookAppointment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidTime), errors.Is(err, usecase.ErrSlotNotInGrid):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrSlotFull):
			response.Error(w, http.StatusConflict, "Slot is fully booked", nil)
		default:
			response.SoftFailure(w, "Failed to book appointment: "+err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", booking)
}
