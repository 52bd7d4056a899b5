package service

import (
	"context"
	"time"

	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/repository"
	"go-voice-call-reminder/internal/infrastructure/voicecall"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VoiceCaller places one outbound call through the provider API.
type VoiceCaller interface {
	InitiateCall(ctx context.Context, phoneNumber string, recipientName *string) (*voicecall.CallResponse, error)
}

// CallDispatcher waits until a call's scheduled instant and then places it.
// One Dispatch runs per scheduled occurrence, each on its own background
// task; everything inside is best-effort and never propagates a failure.
type CallDispatcher struct {
	db          *gorm.DB
	log         *logrus.Logger
	contactRepo repository.ContactRepository
	caller      VoiceCaller
}

func NewCallDispatcher(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.ContactRepository,
	caller VoiceCaller,
) *CallDispatcher {
	return &CallDispatcher{
		db:          db,
		log:         log,
		contactRepo: contactRepo,
		caller:      caller,
	}
}

// Dispatch blocks until scheduledAt, then looks up the contact's name and
// places the call. A scheduled time at or before now returns immediately
// without any outbound traffic; direct callers rely on that guard even
// though the orchestrator only feeds future occurrences.
func (d *CallDispatcher) Dispatch(ctx context.Context, phoneNumber string, scheduledAt time.Time) dto.CallResult {
	delay := time.Until(scheduledAt)
	if delay <= 0 {
		return dto.CallResult{
			PhoneNumber: phoneNumber,
			Status:      dto.CallStatusSkippedPast,
			CallID:      dto.CallIDNone,
		}
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.log.Warnf("Abandoning call to %s scheduled for %s: %v", phoneNumber, scheduledAt.Format(time.RFC3339), ctx.Err())
		return dto.CallResult{
			PhoneNumber: phoneNumber,
			Status:      dto.CallStatusFailed,
			CallID:      dto.CallIDNone,
			Error:       ctx.Err().Error(),
		}
	case <-timer.C:
	}

	resp, err := d.caller.InitiateCall(ctx, phoneNumber, d.lookupName(phoneNumber))
	if err != nil {
		d.log.Errorf("Failed to initiate call for %s: %v", phoneNumber, err)
		return dto.CallResult{
			PhoneNumber: phoneNumber,
			Status:      dto.CallStatusFailed,
			CallID:      dto.CallIDNone,
			Error:       err.Error(),
		}
	}

	status := resp.Status
	if status == "" {
		status = dto.CallStatusUnknown
	}
	callID := resp.CallID
	if callID == "" {
		callID = dto.CallIDNone
	}

	d.log.Infof("Call to %s completed with status %s (call id %s)", phoneNumber, status, callID)
	return dto.CallResult{
		PhoneNumber: phoneNumber,
		Status:      status,
		CallID:      callID,
	}
}

// lookupName fetches the contact's name for the call payload. Any failure
// just means the provider gets a null name.
func (d *CallDispatcher) lookupName(phoneNumber string) *string {
	contact, err := d.contactRepo.FindByPhoneNumber(d.db, phoneNumber)
	if err != nil {
		d.log.Warnf("Name lookup failed for %s: %v", phoneNumber, err)
		return nil
	}
	if contact == nil {
		return nil
	}
	return contact.Name
}
