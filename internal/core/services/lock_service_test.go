package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/services"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLockService() (*services.LockService, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)}
	return services.NewLockService(clock, 5*time.Minute, zerolog.Nop()), clock
}

func TestCreateLock_Contention(t *testing.T) {
	svc, _ := newTestLockService()
	table3 := uuid.New()
	table5 := uuid.New()

	lockA, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, table3)
	require.NoError(t, err)
	require.NotNil(t, lockA)

	// Another session cannot claim the same (date, time, table) triple.
	lockB, err := svc.CreateLock("session-b", "2024-06-01", "19:30", 2, table3)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyLocked)
	assert.Nil(t, lockB)

	// A different table for the same slot is fine.
	lockB2, err := svc.CreateLock("session-b", "2024-06-01", "19:30", 2, table5)
	assert.NoError(t, err)
	assert.NotNil(t, lockB2)
}

func TestCreateLock_SameSessionReplacesPriorLock(t *testing.T) {
	svc, _ := newTestLockService()
	table1 := uuid.New()
	table2 := uuid.New()

	first, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, table1)
	require.NoError(t, err)

	second, err := svc.CreateLock("session-a", "2024-06-01", "20:00", 2, table2)
	require.NoError(t, err)
	assert.NotEqual(t, first.LockID, second.LockID)

	// The prior lock is gone; the session holds exactly the new one.
	assert.Nil(t, svc.GetLockByID(first.LockID))
	sessionLock := svc.GetSessionLock("session-a")
	require.NotNil(t, sessionLock)
	assert.Equal(t, second.LockID, sessionLock.LockID)

	// The old slot is claimable again.
	assert.False(t, svc.IsTableLocked("2024-06-01", "19:30", table1, ""))
}

func TestIsTableLocked_ExcludesOwnSession(t *testing.T) {
	svc, _ := newTestLockService()
	table := uuid.New()

	_, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 4, table)
	require.NoError(t, err)

	assert.False(t, svc.IsTableLocked("2024-06-01", "19:30", table, "session-a"))
	assert.True(t, svc.IsTableLocked("2024-06-01", "19:30", table, "session-b"))
	assert.True(t, svc.IsTableLocked("2024-06-01", "19:30", table, ""))
}

func TestReleaseLock_Idempotent(t *testing.T) {
	svc, _ := newTestLockService()

	lock, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)

	assert.True(t, svc.ReleaseLock(lock.LockID))
	assert.False(t, svc.ReleaseLock(lock.LockID))
	assert.False(t, svc.ReleaseLock("no-such-lock"))
}

func TestLockExpiry(t *testing.T) {
	svc, clock := newTestLockService()
	table := uuid.New()

	lock, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, table)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(5*time.Minute), lock.ExpiresAt)

	// Just before expiry the lock is still visible.
	clock.Advance(5*time.Minute - time.Second)
	assert.NotNil(t, svc.GetLockByID(lock.LockID))

	// One second past expiry it is indistinguishable from never existing.
	clock.Advance(2 * time.Second)
	assert.Nil(t, svc.GetLockByID(lock.LockID))

	// And the slot is free for another session.
	replacement, err := svc.CreateLock("session-b", "2024-06-01", "19:30", 2, table)
	assert.NoError(t, err)
	assert.NotNil(t, replacement)
}

func TestValidateLockForReservation_ErrorOrder(t *testing.T) {
	svc, clock := newTestLockService()
	table := uuid.New()

	lock, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, table)
	require.NoError(t, err)

	t.Run("unknown lock", func(t *testing.T) {
		_, err := svc.ValidateLockForReservation("missing", "session-a", "2024-06-01", "19:30")
		assert.ErrorIs(t, err, domain.ErrLockNotFound)
	})

	t.Run("wrong session wins over slot mismatch", func(t *testing.T) {
		_, err := svc.ValidateLockForReservation(lock.LockID, "session-b", "2024-06-02", "20:00")
		assert.ErrorIs(t, err, domain.ErrLockWrongSession)
	})

	t.Run("slot mismatch", func(t *testing.T) {
		_, err := svc.ValidateLockForReservation(lock.LockID, "session-a", "2024-06-01", "20:00")
		assert.ErrorIs(t, err, domain.ErrLockSlotMismatch)
	})

	t.Run("valid", func(t *testing.T) {
		got, err := svc.ValidateLockForReservation(lock.LockID, "session-a", "2024-06-01", "19:30")
		assert.NoError(t, err)
		assert.Equal(t, lock.LockID, got.LockID)
		assert.Equal(t, table, got.TableID)
	})

	t.Run("expired lock reads as not found", func(t *testing.T) {
		clock.Advance(6 * time.Minute)
		_, err := svc.ValidateLockForReservation(lock.LockID, "session-a", "2024-06-01", "19:30")
		assert.ErrorIs(t, err, domain.ErrLockNotFound)
	})
}

func TestExtendLock(t *testing.T) {
	svc, clock := newTestLockService()

	lock, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	extended := svc.ExtendLock(lock.LockID, 5*time.Minute)
	require.NotNil(t, extended)
	assert.Equal(t, clock.Now().Add(5*time.Minute), extended.ExpiresAt)

	// Past the original expiry, the extended lock is still alive.
	clock.Advance(2 * time.Minute)
	assert.NotNil(t, svc.GetLockByID(lock.LockID))

	t.Run("zero duration falls back to the configured ttl", func(t *testing.T) {
		extended := svc.ExtendLock(lock.LockID, 0)
		require.NotNil(t, extended)
		assert.Equal(t, clock.Now().Add(5*time.Minute), extended.ExpiresAt)
	})

	t.Run("unknown lock", func(t *testing.T) {
		assert.Nil(t, svc.ExtendLock("missing", time.Minute))
	})
}

func TestReleaseSessionLocks(t *testing.T) {
	svc, _ := newTestLockService()

	_, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)
	_, err = svc.CreateLock("session-b", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, svc.ReleaseSessionLocks("session-a"))
	assert.Equal(t, 0, svc.ReleaseSessionLocks("session-a"))
	assert.Nil(t, svc.GetSessionLock("session-a"))
	assert.NotNil(t, svc.GetSessionLock("session-b"))
}

func TestGetLocksForSlot(t *testing.T) {
	svc, _ := newTestLockService()

	_, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)
	_, err = svc.CreateLock("session-b", "2024-06-01", "19:30", 4, uuid.New())
	require.NoError(t, err)
	_, err = svc.CreateLock("session-c", "2024-06-01", "20:00", 2, uuid.New())
	require.NoError(t, err)

	assert.Len(t, svc.GetLocksForSlot("2024-06-01", "19:30", ""), 2)
	assert.Len(t, svc.GetLocksForSlot("2024-06-01", "19:30", "session-a"), 1)
	assert.Empty(t, svc.GetLocksForSlot("2024-06-02", "19:30", ""))
}

func TestLockStats(t *testing.T) {
	svc, clock := newTestLockService()

	_, err := svc.CreateLock("session-a", "2024-06-01", "19:30", 2, uuid.New())
	require.NoError(t, err)
	_, err = svc.CreateLock("session-b", "2024-06-01", "20:00", 2, uuid.New())
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, domain.LockStats{Total: 2, Active: 2, Expired: 0}, stats)

	// Stats does not sweep, so entries expired since the last access show up
	// in the expired bucket.
	clock.Advance(6 * time.Minute)
	stats = svc.Stats()
	assert.Equal(t, domain.LockStats{Total: 2, Active: 0, Expired: 2}, stats)
}
