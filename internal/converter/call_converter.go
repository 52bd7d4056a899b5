package converter

import (
	"time"

	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/entity"
)

// ContactScheduleAt combines a contact's scheduled date and "HH:MM" time
// into one instant in local time. Missing or malformed fields report false.
func ContactScheduleAt(contact *entity.Contact) (time.Time, bool) {
	if !contact.HasSchedule() {
		return time.Time{}, false
	}

	slot, err := time.Parse("15:04", *contact.ScheduledTime)
	if err != nil {
		return time.Time{}, false
	}

	d := *contact.ScheduledDate
	return time.Date(d.Year(), d.Month(), d.Day(), slot.Hour(), slot.Minute(), 0, 0, time.Local), true
}

// ContactToScheduledResult reports an appointment call that was handed off
// to a background dispatcher.
func ContactToScheduledResult(contact *entity.Contact, scheduledAt time.Time) dto.CallResult {
	return dto.CallResult{
		PhoneNumber:  contact.PhoneNumber,
		Status:       dto.CallStatusScheduled,
		CallID:       dto.CallIDPending,
		ScheduledFor: scheduledAt.Format(time.RFC3339),
	}
}

// ContactToSkippedPastResult reports an appointment whose slot already
// passed; no dispatcher is created for it.
func ContactToSkippedPastResult(contact *entity.Contact, scheduledAt time.Time) dto.CallResult {
	return dto.CallResult{
		PhoneNumber:  contact.PhoneNumber,
		Status:       dto.CallStatusSkippedPast,
		CallID:       dto.CallIDNone,
		ScheduledFor: scheduledAt.Format(time.RFC3339),
	}
}

// ContactToMissingScheduleResult reports an appointment row without a usable
// date or time.
func ContactToMissingScheduleResult(contact *entity.Contact) dto.CallResult {
	return dto.CallResult{
		PhoneNumber: contact.PhoneNumber,
		Status:      dto.CallStatusSkippedMissing,
		CallID:      dto.CallIDNone,
	}
}

// MedicineToScheduledResult reports one scheduled reminder occurrence for a
// medicine on a prescription.
func MedicineToScheduledResult(prescription *entity.Prescription, medicine entity.Medicine, scheduledAt time.Time) dto.CallResult {
	return dto.CallResult{
		PhoneNumber:    prescription.PatientPhone,
		Status:         dto.CallStatusScheduled,
		ScheduledFor:   scheduledAt.Format(time.RFC3339),
		PrescriptionID: prescription.ID.String(),
		MedicineName:   medicine.Name,
	}
}
