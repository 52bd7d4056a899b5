package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-voice-call-reminder/config"
	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/entity"
	"go-voice-call-reminder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingConfig() config.BookingConfig {
	return config.BookingConfig{OpenHour: 9, CloseHour: 17, SlotCapacity: 2}
}

// newAppointmentUsecase wires the usecase with a Redis-less slot service, so
// reservation always takes the database-count fallback.
func newAppointmentUsecase(repo *fakeContactRepo) AppointmentUsecase {
	log := usecaseLogger()
	slots := service.NewSlotReserveService(nil, nil, log, repo, bookingConfig().SlotCapacity)
	return NewAppointmentUsecase(nil, log, repo, slots, bookingConfig())
}

func TestCheckSlot(t *testing.T) {
	repo := &fakeContactRepo{slots: map[string]int64{
		"2026-09-01 10:00": 2,
		"2026-09-01 11:00": 1,
	}}
	u := newAppointmentUsecase(repo)

	full, err := u.CheckSlot(context.Background(), "2026-09-01", "10:00")
	require.NoError(t, err)
	assert.False(t, full.Available)
	assert.EqualValues(t, 2, full.Booked)
	assert.Equal(t, 2, full.Capacity)

	open, err := u.CheckSlot(context.Background(), "2026-09-01", "11:00")
	require.NoError(t, err)
	assert.True(t, open.Available)

	empty, err := u.CheckSlot(context.Background(), "2026-09-01", "12:00")
	require.NoError(t, err)
	assert.True(t, empty.Available)
	assert.EqualValues(t, 0, empty.Booked)
}

func TestCheckSlotOutsideGridNeverAvailable(t *testing.T) {
	u := newAppointmentUsecase(&fakeContactRepo{})

	status, err := u.CheckSlot(context.Background(), "2026-09-01", "22:00")
	require.NoError(t, err)
	assert.False(t, status.Available)
}

func TestCheckSlotValidation(t *testing.T) {
	u := newAppointmentUsecase(&fakeContactRepo{})

	_, err := u.CheckSlot(context.Background(), "01-09-2026", "10:00")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = u.CheckSlot(context.Background(), "2026-09-01", "10am")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestAvailableSlotsSkipsFullOnes(t *testing.T) {
	repo := &fakeContactRepo{dayCount: map[string]int64{
		"09:00": 2,
		"10:00": 1,
	}}
	u := newAppointmentUsecase(repo)

	resp, err := u.AvailableSlots(context.Background(), "2026-09-01")
	require.NoError(t, err)

	// 8 grid slots, 09:00 is full.
	assert.Equal(t, 7, resp.Total)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:00", resp.Slots[0].Time)
	assert.EqualValues(t, 1, resp.Slots[0].Booked)
	assert.EqualValues(t, 1, resp.Slots[0].Remaining)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "09:00", slot.Time)
	}
}

func TestBookAppointmentNewContact(t *testing.T) {
	repo := &fakeContactRepo{}
	u := newAppointmentUsecase(repo)

	resp, err := u.BookAppointment(context.Background(), &dto.BookAppointmentRequest{
		Date:      "2026-09-01",
		Time:      "10:00",
		UserPhone: "+15550009999",
		Name:      "Carol",
	})
	require.NoError(t, err)

	assert.Equal(t, "+15550009999", resp.PhoneNumber)
	assert.Equal(t, "Carol", resp.Name)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
}

func TestBookAppointmentMovesExistingContact(t *testing.T) {
	name := "Dave"
	repo := &fakeContactRepo{contacts: []entity.Contact{
		{PhoneNumber: "+15550008888", Name: &name, ScheduledDate: datePtr(2026, time.August, 1), ScheduledTime: strPtr("09:00")},
	}}
	u := newAppointmentUsecase(repo)

	_, err := u.BookAppointment(context.Background(), &dto.BookAppointmentRequest{
		Date:      "2026-09-02",
		Time:      "11:00",
		UserPhone: "+15550008888",
	})
	require.NoError(t, err)

	contact := &repo.contacts[0]
	require.NotNil(t, contact.ScheduledDate)
	assert.Equal(t, "2026-09-02", contact.ScheduledDate.Format("2006-01-02"))
	require.NotNil(t, contact.ScheduledTime)
	assert.Equal(t, "11:00", *contact.ScheduledTime)
}

func TestBookAppointmentFullSlot(t *testing.T) {
	repo := &fakeContactRepo{slots: map[string]int64{"2026-09-01 10:00": 2}}
	u := newAppointmentUsecase(repo)

	_, err := u.BookAppointment(context.Background(), &dto.BookAppointmentRequest{
		Date:      "2026-09-01",
		Time:      "10:00",
		UserPhone: "+15550007777",
	})
	assert.ErrorIs(t, err, service.ErrSlotFull)
}

func TestBookAppointmentOutsideGrid(t *testing.T) {
	u := newAppointmentUsecase(&fakeContactRepo{})

	_, err := u.BookAppointment(context.Background(), &dto.BookAppointmentRequest{
		Date:      "2026-09-01",
		Time:      "22:00",
		UserPhone: "+15550006666",
	})
	assert.ErrorIs(t, err, ErrSlotNotInGrid)
}

func TestBookAppointmentSoftFailureOnWriteError(t *testing.T) {
	repo := &fakeContactRepo{createErr: errors.New("disk full")}
	u := newAppointmentUsecase(repo)

	_, err := u.BookAppointment(context.Background(), &dto.BookAppointmentRequest{
		Date:      "2026-09-01",
		Time:      "10:00",
		UserPhone: "+15550005555",
	})
	assert.ErrorIs(t, err, ErrBookingFailed)
}
