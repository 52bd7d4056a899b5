package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-voice-call-reminder/config"
	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/entity"
	"go-voice-call-reminder/internal/domain/repository"
	"go-voice-call-reminder/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime   = errors.New("invalid time format, use HH:MM")
	ErrSlotNotInGrid = errors.New("requested time is outside booking hours")
	ErrSlotFull      = service.ErrSlotFull
	ErrBookingFailed = errors.New("failed to save the booking")
)

type AppointmentUsecase interface {
	CheckSlot(ctx context.Context, dateStr, timeStr string) (*dto.SlotStatusResponse, error)
	AvailableSlots(ctx context.Context, dateStr string) (*dto.AvailableSlotsResponse, error)
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error)
}

type appointmentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	contactRepo repository.ContactRepository
	slots       *service.SlotReserveService
	booking     config.BookingConfig
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.ContactRepository,
	slots *service.SlotReserveService,
	booking config.BookingConfig,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:          db,
		log:         log,
		contactRepo: contactRepo,
		slots:       slots,
		booking:     booking,
	}
}

// slotTimes returns the bookable grid for one day: hourly slots between the
// configured open and close hours.
func (u *appointmentUsecase) slotTimes() []string {
	times := make([]string, 0, u.booking.CloseHour-u.booking.OpenHour)
	for h := u.booking.OpenHour; h < u.booking.CloseHour; h++ {
		times = append(times, fmt.Sprintf("%02d:00", h))
	}
	return times
}

func (u *appointmentUsecase) inGrid(slotTime string) bool {
	for _, t := range u.slotTimes() {
		if t == slotTime {
			return true
		}
	}
	return false
}

func parseSlot(dateStr, timeStr string) (time.Time, string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}
	slot, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, "", ErrInvalidTime
	}
	return date, slot.Format("15:04"), nil
}

func (u *appointmentUsecase) CheckSlot(ctx context.Context, dateStr, timeStr string) (*dto.SlotStatusResponse, error) {
	date, slotTime, err := parseSlot(dateStr, timeStr)
	if err != nil {
		return nil, err
	}

	count, err := u.contactRepo.CountBySlot(u.db, date, slotTime)
	if err != nil {
		u.log.Warnf("Failed to count bookings for slot %s %s: %+v", dateStr, slotTime, err)
		return nil, err
	}

	return &dto.SlotStatusResponse{
		Date:      date.Format("2006-01-02"),
		Time:      slotTime,
		Available: u.inGrid(slotTime) && count < int64(u.booking.SlotCapacity),
		Booked:    count,
		Capacity:  u.booking.SlotCapacity,
	}, nil
}

func (u *appointmentUsecase) AvailableSlots(ctx context.Context, dateStr string) (*dto.AvailableSlotsResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	counts, err := u.contactRepo.CountByDate(u.db, date)
	if err != nil {
		u.log.Warnf("Failed to count bookings for %s: %+v", dateStr, err)
		return nil, err
	}

	capacity := int64(u.booking.SlotCapacity)
	var slots []dto.SlotInfo
	for _, t := range u.slotTimes() {
		booked := counts[t]
		if booked >= capacity {
			continue
		}
		slots = append(slots, dto.SlotInfo{
			Time:      t,
			Booked:    booked,
			Remaining: capacity - booked,
		})
	}

	return &dto.AvailableSlotsResponse{
		Date:  date.Format("2006-01-02"),
		Slots: slots,
		Total: len(slots),
	}, nil
}

// BookAppointment reserves slot capacity atomically and then writes the
// contact row. An existing contact (same phone) has its slot moved; a new
// phone number gets a fresh row.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
	date, slotTime, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !u.inGrid(slotTime) {
		return nil, ErrSlotNotInGrid
	}

	reservedInRedis, err := u.slots.Reserve(ctx, date, slotTime)
	if err != nil {
		return nil, err
	}

	if err := u.saveBooking(ctx, req, date, slotTime); err != nil {
		if reservedInRedis {
			u.slots.Release(ctx, date, slotTime)
		}
		u.log.Warnf("Failed to save booking for %s: %+v", req.UserPhone, err)
		return nil, ErrBookingFailed
	}

	return &dto.BookingResponse{
		PhoneNumber: req.UserPhone,
		Name:        req.Name,
		Date:        date.Format("2006-01-02"),
		Time:        slotTime,
	}, nil
}

func (u *appointmentUsecase) saveBooking(ctx context.Context, req *dto.BookAppointmentRequest, date time.Time, slotTime string) error {
	db := u.db

	contact, err := u.contactRepo.FindByPhoneNumber(db, req.UserPhone)
	if err != nil {
		return err
	}

	slotDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if contact == nil {
		contact = &entity.Contact{
			PhoneNumber:   req.UserPhone,
			ScheduledDate: &slotDate,
			ScheduledTime: &slotTime,
		}
		if req.Name != "" {
			contact.Name = &req.Name
		}
		return u.contactRepo.Create(db, contact)
	}

	contact.ScheduledDate = &slotDate
	contact.ScheduledTime = &slotTime
	if req.Name != "" {
		contact.Name = &req.Name
	}
	return u.contactRepo.Update(db, contact)
}
