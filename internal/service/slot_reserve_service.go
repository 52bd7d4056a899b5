package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-voice-call-reminder/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotFull is returned when an appointment slot has no capacity left.
var ErrSlotFull = errors.New("slot is fully booked")

// reserveSlotScript atomically claims one place in a slot. The go-redis
// client switches to EVALSHA after the first call.
//
// Logic:
// 1. INCR the slot counter
// 2. If it exceeds capacity, DECR back (rollback) and return -1
// 3. Otherwise return the new count
var reserveSlotScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current > tonumber(ARGV[1]) then
		redis.call('DECR', KEYS[1])
		return -1
	end
	return current
`)

const (
	slotKeyPrefix = "slot:booked:"

	// Counters outlive their slot by a day and then expire on their own.
	slotKeyTTL = 48 * time.Hour

	redisOpTimeout = 5 * time.Second
)

// SlotReserveService guards appointment slot capacity. Reservation goes
// through Redis for atomicity under concurrent bookings; when Redis is
// unavailable it degrades to a plain database count, which is good enough
// for the traffic a single clinic sees.
type SlotReserveService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	contactRepo repository.ContactRepository
	capacity    int
}

func NewSlotReserveService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	contactRepo repository.ContactRepository,
	capacity int,
) *SlotReserveService {
	return &SlotReserveService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		contactRepo: contactRepo,
		capacity:    capacity,
	}
}

func slotKey(date time.Time, slotTime string) string {
	return fmt.Sprintf("%s%s:%s", slotKeyPrefix, date.Format("2006-01-02"), slotTime)
}

// Reserve claims one place in the slot. It reports whether the claim is held
// in Redis so the caller knows to Release on a failed booking write. Returns
// ErrSlotFull when the slot is at capacity.
func (s *SlotReserveService) Reserve(ctx context.Context, date time.Time, slotTime string) (bool, error) {
	if s.redisClient != nil {
		opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
		defer cancel()

		key := slotKey(date, slotTime)
		result, err := reserveSlotScript.Run(opCtx, s.redisClient, []string{key}, s.capacity).Int64()
		if err == nil {
			if result < 0 {
				return false, ErrSlotFull
			}
			if result == 1 {
				if err := s.redisClient.Expire(opCtx, key, slotKeyTTL).Err(); err != nil {
					s.log.Warnf("Failed to set TTL on %s: %v", key, err)
				}
			}
			return true, nil
		}
		s.log.Warnf("Redis slot reservation failed, falling back to database count: %v", err)
	}

	count, err := s.contactRepo.CountBySlot(s.db, date, slotTime)
	if err != nil {
		return false, err
	}
	if count >= int64(s.capacity) {
		return false, ErrSlotFull
	}
	return false, nil
}

// Release undoes a Redis-held reservation after a failed booking write.
// Best-effort only.
func (s *SlotReserveService) Release(ctx context.Context, date time.Time, slotTime string) {
	if s.redisClient == nil {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.redisClient.Decr(opCtx, slotKey(date, slotTime)).Err(); err != nil {
		s.log.Warnf("Failed to release slot reservation %s: %v", slotKey(date, slotTime), err)
	}
}
