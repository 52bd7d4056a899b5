package dto

// Request DTOs

type BookAppointmentRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	UserPhone string `json:"user_phone" validate:"required,min=7,max=20"`
	Name      string `json:"name" validate:"omitempty,max=255"`
}

// Response DTOs

type SlotStatusResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Booked    int64  `json:"booked"`
	Capacity  int    `json:"capacity"`
}

type SlotInfo struct {
	Time      string `json:"time"`
	Booked    int64  `json:"booked"`
	Remaining int64  `json:"remaining"`
}

type AvailableSlotsResponse struct {
	Date  string     `json:"date"`
	Slots []SlotInfo `json:"slots"`
	Total int        `json:"total"`
}

type BookingResponse struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}
