package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/platform/metrics"
)

// DefaultLockDuration is how long a checkout holds a slot before the claim
// silently returns to the pool.
const DefaultLockDuration = 5 * time.Minute

// LockService owns the in-memory slot-lock store. Every operation acquires the
// mutex, purges expired locks, then acts, so the check-then-create sequence is
// atomic against concurrent requests and expired locks never surface as active.
type LockService struct {
	mu     sync.Mutex
	locks  map[string]*domain.SlotLock // slot key -> lock
	byID   map[string]string           // lock id -> slot key
	clock  domain.Clock
	ttl    time.Duration
	logger zerolog.Logger
}

func NewLockService(clock domain.Clock, ttl time.Duration, logger zerolog.Logger) *LockService {
	if ttl <= 0 {
		ttl = DefaultLockDuration
	}
	return &LockService{
		locks:  make(map[string]*domain.SlotLock),
		byID:   make(map[string]string),
		clock:  clock,
		ttl:    ttl,
		logger: logger,
	}
}

// sweepLocked removes expired locks. Callers must hold s.mu.
func (s *LockService) sweepLocked() {
	now := s.clock.Now()
	swept := 0

	for key, lock := range s.locks {
		if lock.Expired(now) {
			delete(s.locks, key)
			delete(s.byID, lock.LockID)
			swept++
		}
	}

	if swept > 0 {
		metrics.AddLocksExpired(swept)
		s.logger.Debug().Int("count", swept).Msg("purged expired slot locks")
	}
	metrics.SetActiveLocks(len(s.locks))
}

// CreateLock claims the (date, time, table) slot for the session. The check
// and the insert happen under one mutex hold, so two sessions can never both
// pass the availability check and then both write. A session holds at most one
// lock: creating a new one releases its previous lock first.
func (s *LockService) CreateLock(sessionID, date, timeOfDay string, partySize int, tableID uuid.UUID) (*domain.SlotLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	key := domain.SlotKey(date, timeOfDay, tableID)
	if existing, ok := s.locks[key]; ok && existing.SessionID != sessionID {
		metrics.IncLockContention()
		return nil, domain.ErrSlotAlreadyLocked
	}

	if prior := s.sessionLockLocked(sessionID); prior != nil {
		s.removeLocked(prior)
	}

	now := s.clock.Now()
	lock := &domain.SlotLock{
		LockID:    uuid.NewString(),
		SessionID: sessionID,
		Date:      date,
		Time:      timeOfDay,
		PartySize: partySize,
		TableID:   tableID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.locks[key] = lock
	s.byID[lock.LockID] = key
	metrics.IncLockCreated()
	metrics.SetActiveLocks(len(s.locks))

	s.logger.Info().
		Str("lockId", lock.LockID).
		Str("date", date).
		Str("time", timeOfDay).
		Str("tableId", tableID.String()).
		Msg("slot lock created")

	copied := *lock
	return &copied, nil
}

// GetLockByID returns the lock, or nil when it is absent or expired; the two
// cases are indistinguishable to callers.
func (s *LockService) GetLockByID(lockID string) *domain.SlotLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock := s.lockByIDLocked(lockID)
	if lock == nil {
		return nil
	}
	copied := *lock
	return &copied
}

func (s *LockService) lockByIDLocked(lockID string) *domain.SlotLock {
	key, ok := s.byID[lockID]
	if !ok {
		return nil
	}
	return s.locks[key]
}

// IsTableLocked reports whether another session holds the slot. A session
// never sees its own lock as blocking when it passes its id as
// excludeSessionID; pass "" to consider every lock.
func (s *LockService) IsTableLocked(date, timeOfDay string, tableID uuid.UUID, excludeSessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock, ok := s.locks[domain.SlotKey(date, timeOfDay, tableID)]
	if !ok {
		return false
	}
	if excludeSessionID != "" && lock.SessionID == excludeSessionID {
		return false
	}
	return true
}

// GetLocksForSlot returns the active locks on any table for the date and time.
func (s *LockService) GetLocksForSlot(date, timeOfDay, excludeSessionID string) []domain.SlotLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	var result []domain.SlotLock
	for _, lock := range s.locks {
		if lock.Date != date || lock.Time != timeOfDay {
			continue
		}
		if excludeSessionID != "" && lock.SessionID == excludeSessionID {
			continue
		}
		result = append(result, *lock)
	}
	return result
}

// GetSessionLock returns the session's active lock, or nil.
func (s *LockService) GetSessionLock(sessionID string) *domain.SlotLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock := s.sessionLockLocked(sessionID)
	if lock == nil {
		return nil
	}
	copied := *lock
	return &copied
}

func (s *LockService) sessionLockLocked(sessionID string) *domain.SlotLock {
	for _, lock := range s.locks {
		if lock.SessionID == sessionID {
			return lock
		}
	}
	return nil
}

func (s *LockService) removeLocked(lock *domain.SlotLock) {
	delete(s.locks, lock.Key())
	delete(s.byID, lock.LockID)
	metrics.SetActiveLocks(len(s.locks))
}

// ReleaseLock removes the lock. It is idempotent: releasing an unknown or
// already-released lock returns false and never fails.
func (s *LockService) ReleaseLock(lockID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock := s.lockByIDLocked(lockID)
	if lock == nil {
		return false
	}

	s.removeLocked(lock)
	s.logger.Info().Str("lockId", lockID).Msg("slot lock released")
	return true
}

// ReleaseSessionLocks removes every lock the session holds and returns how
// many were removed.
func (s *LockService) ReleaseSessionLocks(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	released := 0
	for _, lock := range s.locks {
		if lock.SessionID == sessionID {
			s.removeLocked(lock)
			released++
		}
	}

	if released > 0 {
		s.logger.Info().Str("sessionId", sessionID).Int("count", released).Msg("session locks released")
	}
	return released
}

// ValidateLockForReservation verifies, in order, that the lock exists, belongs
// to the session, matches the requested slot, and has not expired. The first
// failing check decides the returned error; callers surface the distinction to
// the user.
func (s *LockService) ValidateLockForReservation(lockID, sessionID, date, timeOfDay string) (*domain.SlotLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock := s.lockByIDLocked(lockID)
	if lock == nil {
		return nil, domain.ErrLockNotFound
	}
	if lock.SessionID != sessionID {
		return nil, domain.ErrLockWrongSession
	}
	if lock.Date != date || lock.Time != timeOfDay {
		return nil, domain.ErrLockSlotMismatch
	}
	if lock.Expired(s.clock.Now()) {
		return nil, domain.ErrLockExpired
	}

	copied := *lock
	return &copied, nil
}

// ExtendLock resets the lock's expiry relative to now. A non-positive duration
// falls back to the configured TTL. Returns nil when the lock is gone.
func (s *LockService) ExtendLock(lockID string, duration time.Duration) *domain.SlotLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	lock := s.lockByIDLocked(lockID)
	if lock == nil {
		return nil
	}

	if duration <= 0 {
		duration = s.ttl
	}
	lock.ExpiresAt = s.clock.Now().Add(duration)

	s.logger.Info().Str("lockId", lockID).Time("expiresAt", lock.ExpiresAt).Msg("slot lock extended")

	copied := *lock
	return &copied
}

// Stats counts the locks currently in the store without sweeping, so entries
// expired since the last access show up in the expired bucket.
func (s *LockService) Stats() domain.LockStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	stats := domain.LockStats{Total: len(s.locks)}
	for _, lock := range s.locks {
		if lock.Expired(now) {
			stats.Expired++
		} else {
			stats.Active++
		}
	}
	return stats
}
