package usecase

import (
	"context"
	"fmt"
	"time"

	"go-voice-call-reminder/internal/converter"
	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/repository"
	"go-voice-call-reminder/internal/schedule"
	"go-voice-call-reminder/pkg/taskgroup"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// occurrenceWarnThreshold flags suspicious prescriptions: duration is not
// capped, so a malformed durationDays can fan out an enormous number of
// background tasks.
const occurrenceWarnThreshold = 1000

// Dispatcher waits until a call's scheduled instant and places it.
type Dispatcher interface {
	Dispatch(ctx context.Context, phoneNumber string, scheduledAt time.Time) dto.CallResult
}

type CallSchedulerUsecase interface {
	MakeCalls(ctx context.Context) (*dto.CallSummaryResponse, error)
	ScheduleMedicineCalls(ctx context.Context) (*dto.CallSummaryResponse, error)
}

type callSchedulerUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	contactRepo      repository.ContactRepository
	prescriptionRepo repository.PrescriptionRepository
	dispatcher       Dispatcher
	tasks            taskgroup.Spawner
}

func NewCallSchedulerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.ContactRepository,
	prescriptionRepo repository.PrescriptionRepository,
	dispatcher Dispatcher,
	tasks taskgroup.Spawner,
) CallSchedulerUsecase {
	return &callSchedulerUsecase{
		db:               db,
		log:              log,
		contactRepo:      contactRepo,
		prescriptionRepo: prescriptionRepo,
		dispatcher:       dispatcher,
		tasks:            tasks,
	}
}

// MakeCalls walks every contact row and hands each future appointment to a
// background dispatcher. The response reports every row; the dispatchers
// themselves are fire-and-forget.
func (u *callSchedulerUsecase) MakeCalls(ctx context.Context) (*dto.CallSummaryResponse, error) {
	contacts, err := u.contactRepo.FindAll(u.db)
	if err != nil {
		u.log.Errorf("Failed to fetch contacts: %+v", err)
		return nil, err
	}

	if len(contacts) == 0 {
		return &dto.CallSummaryResponse{Message: "No contacts found in the database."}, nil
	}

	now := time.Now()
	results := make([]dto.CallResult, 0, len(contacts))

	for i := range contacts {
		contact := &contacts[i]

		scheduledAt, ok := converter.ContactScheduleAt(contact)
		if !ok {
			results = append(results, converter.ContactToMissingScheduleResult(contact))
			continue
		}

		if !scheduledAt.After(now) {
			results = append(results, converter.ContactToSkippedPastResult(contact, scheduledAt))
			continue
		}

		u.spawnCall(contact.PhoneNumber, scheduledAt)
		results = append(results, converter.ContactToScheduledResult(contact, scheduledAt))
	}

	return &dto.CallSummaryResponse{
		Message:     "Call processing completed.",
		CallResults: results,
	}, nil
}

// ScheduleMedicineCalls expands every reminder-enabled prescription into
// per-medicine call occurrences and dispatches the future ones. Unlike
// appointment mode, occurrences already in the past are simply absent from
// the response.
func (u *callSchedulerUsecase) ScheduleMedicineCalls(ctx context.Context) (*dto.CallSummaryResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindAllWithReminder(u.db)
	if err != nil {
		u.log.Errorf("Failed to fetch prescriptions: %+v", err)
		return nil, err
	}

	if len(prescriptions) == 0 {
		return &dto.CallSummaryResponse{Message: "No prescriptions found requiring calls."}, nil
	}

	now := time.Now()
	var results []dto.CallResult

	for i := range prescriptions {
		prescription := &prescriptions[i]

		for _, medicine := range prescription.Medicines {
			times := schedule.ParseTiming(medicine.Timing)
			if len(times) == 0 {
				u.log.Warnf("No parsable times in timing %q for medicine %q on prescription %s, skipping",
					medicine.Timing, medicine.Name, prescription.ID)
				continue
			}

			occurrences := schedule.Expand(prescription.CreatedAt, medicine.DurationDays, times, now)
			if len(occurrences) > occurrenceWarnThreshold {
				u.log.Warnf("Medicine %q on prescription %s expands to %d occurrences",
					medicine.Name, prescription.ID, len(occurrences))
			}

			for _, at := range occurrences {
				u.spawnCall(prescription.PatientPhone, at)
				results = append(results, converter.MedicineToScheduledResult(prescription, medicine, at))
			}
		}
	}

	return &dto.CallSummaryResponse{
		Message:     "Medicine reminder calls scheduled successfully.",
		CallResults: results,
	}, nil
}

func (u *callSchedulerUsecase) spawnCall(phoneNumber string, at time.Time) {
	name := fmt.Sprintf("call:%s@%s", phoneNumber, at.Format(time.RFC3339))
	u.tasks.Go(name, func(ctx context.Context) {
		u.dispatcher.Dispatch(ctx, phoneNumber, at)
	})
}
