package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"go-voice-call-reminder/internal/delivery/dto"
	"go-voice-call-reminder/internal/domain/entity"
	"go-voice-call-reminder/internal/infrastructure/voicecall"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubContactRepo struct {
	contacts map[string]*entity.Contact
	findErr  error
}

func (s *stubContactRepo) Create(db *gorm.DB, contact *entity.Contact) error { return nil }
func (s *stubContactRepo) Update(db *gorm.DB, contact *entity.Contact) error { return nil }
func (s *stubContactRepo) FindAll(db *gorm.DB) ([]entity.Contact, error)     { return nil, nil }
func (s *stubContactRepo) CountBySlot(db *gorm.DB, date time.Time, slotTime string) (int64, error) {
	return 0, nil
}
func (s *stubContactRepo) CountByDate(db *gorm.DB, date time.Time) (map[string]int64, error) {
	return nil, nil
}

func (s *stubContactRepo) FindByPhoneNumber(db *gorm.DB, phone string) (*entity.Contact, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.contacts[phone], nil
}

type stubCaller struct {
	calls    atomic.Int64
	lastName *string
	resp     *voicecall.CallResponse
	err      error
}

func (s *stubCaller) InitiateCall(ctx context.Context, phone string, name *string) (*voicecall.CallResponse, error) {
	s.calls.Add(1)
	s.lastName = name
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDispatchPastTimeSkipsWithoutCalling(t *testing.T) {
	caller := &stubCaller{}
	d := NewCallDispatcher(nil, testLogger(), &stubContactRepo{}, caller)

	result := d.Dispatch(context.Background(), "+15550001111", time.Now().Add(-time.Minute))

	assert.Equal(t, dto.CallStatusSkippedPast, result.Status)
	assert.Equal(t, dto.CallIDNone, result.CallID)
	assert.Equal(t, "+15550001111", result.PhoneNumber)
	assert.EqualValues(t, 0, caller.calls.Load())
}

func TestDispatchWaitsThenCallsWithName(t *testing.T) {
	name := "Bob"
	repo := &stubContactRepo{contacts: map[string]*entity.Contact{
		"+15550001111": {PhoneNumber: "+15550001111", Name: &name},
	}}
	caller := &stubCaller{resp: &voicecall.CallResponse{Status: "queued", CallID: "c-1"}}
	d := NewCallDispatcher(nil, testLogger(), repo, caller)

	start := time.Now()
	result := d.Dispatch(context.Background(), "+15550001111", start.Add(30*time.Millisecond))

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, "queued", result.Status)
	assert.Equal(t, "c-1", result.CallID)
	require.NotNil(t, caller.lastName)
	assert.Equal(t, "Bob", *caller.lastName)
}

func TestDispatchNameLookupFailureIsNotFatal(t *testing.T) {
	repo := &stubContactRepo{findErr: errors.New("connection refused")}
	caller := &stubCaller{resp: &voicecall.CallResponse{Status: "queued", CallID: "c-2"}}
	d := NewCallDispatcher(nil, testLogger(), repo, caller)

	result := d.Dispatch(context.Background(), "+15550002222", time.Now().Add(10*time.Millisecond))

	assert.Equal(t, "queued", result.Status)
	assert.Nil(t, caller.lastName)
}

func TestDispatchAPIFailureReturnsFailed(t *testing.T) {
	caller := &stubCaller{err: errors.New("call api returned status 500")}
	d := NewCallDispatcher(nil, testLogger(), &stubContactRepo{}, caller)

	result := d.Dispatch(context.Background(), "+15550003333", time.Now().Add(10*time.Millisecond))

	assert.Equal(t, dto.CallStatusFailed, result.Status)
	assert.Equal(t, dto.CallIDNone, result.CallID)
	assert.Contains(t, result.Error, "500")
}

func TestDispatchDefaultsMissingResponseFields(t *testing.T) {
	caller := &stubCaller{resp: &voicecall.CallResponse{}}
	d := NewCallDispatcher(nil, testLogger(), &stubContactRepo{}, caller)

	result := d.Dispatch(context.Background(), "+15550004444", time.Now().Add(10*time.Millisecond))

	assert.Equal(t, dto.CallStatusUnknown, result.Status)
	assert.Equal(t, dto.CallIDNone, result.CallID)
}

func TestDispatchAbandonsOnCancel(t *testing.T) {
	caller := &stubCaller{resp: &voicecall.CallResponse{Status: "queued"}}
	d := NewCallDispatcher(nil, testLogger(), &stubContactRepo{}, caller)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result := d.Dispatch(ctx, "+15550005555", time.Now().Add(time.Hour))

	assert.Equal(t, dto.CallStatusFailed, result.Status)
	assert.EqualValues(t, 0, caller.calls.Load())
}
