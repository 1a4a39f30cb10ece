package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEscalator(t *testing.T, store *TrackingStore, clock *stubClock) (*Escalator, *mocks.MockMessenger) {
	t.Helper()

	messenger := mocks.NewMockMessenger(t)
	return NewEscalator(store, messenger, WithEscalatorClock(clock)), messenger
}

func expectReminder(messenger *mocks.MockMessenger, id domain.MessageID) *mocks.MockMessenger_Reply_Call {
	return messenger.EXPECT().Reply(mockAnyContext(), destGroup, id, "⏰ Aún no se ha gestionado la solicitud.\n¿Me ayudas por favor?")
}

func TestEscalatorSendsAtMostTwoRemindersOnSchedule(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, trackedRecord("fwd-1", "", baseTime)))

	clock := newStubClock(baseTime)
	escalator, messenger := newTestEscalator(t, store, clock)

	steps := []struct {
		at       time.Duration
		remind   bool
		expected int
	}{
		{at: 14*time.Minute + 59*time.Second, expected: 0},
		{at: 15 * time.Minute, remind: true, expected: 1},
		{at: 29 * time.Minute, expected: 1},
		{at: 30 * time.Minute, remind: true, expected: 2},
		{at: 45 * time.Minute, expected: 2},
		{at: 3 * time.Hour, expected: 2},
	}
	for _, step := range steps {
		clock.Set(baseTime.Add(step.at))
		if step.remind {
			expectReminder(messenger, "fwd-1").Return(nil).Once()
		}

		report, err := escalator.Tick(ctx)
		require.NoError(t, err)
		assert.Equal(t, boolToInt(step.remind), report.Reminded, step.at)

		record, err := store.Get(ctx, "fwd-1")
		require.NoError(t, err)
		assert.Equal(t, step.expected, record.ReminderCount, step.at)
	}
}

func TestEscalatorFailedReminderIsRetried(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, trackedRecord("fwd-1", "", baseTime)))

	clock := newStubClock(baseTime.Add(16 * time.Minute))
	escalator, messenger := newTestEscalator(t, store, clock)

	expectReminder(messenger, "fwd-1").Return(errors.New("socket closed")).Once()
	report, err := escalator.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	record, err := store.Get(ctx, "fwd-1")
	require.NoError(t, err)
	assert.Equal(t, 0, record.ReminderCount)

	clock.Advance(time.Minute)
	expectReminder(messenger, "fwd-1").Return(nil).Once()
	_, err = escalator.Tick(ctx)
	require.NoError(t, err)

	record, err = store.Get(ctx, "fwd-1")
	require.NoError(t, err)
	assert.Equal(t, 1, record.ReminderCount)
}

func TestEscalatorSkipsResolvedRecords(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, trackedRecord("fwd-1", "", baseTime)))
	_, err := store.Resolve(ctx, "fwd-1", baseTime.Add(time.Minute))
	require.NoError(t, err)

	escalator, _ := newTestEscalator(t, store, newStubClock(baseTime.Add(time.Hour)))
	report, err := escalator.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepReport{}, report)
}

func TestEscalatorRepairsRecordWithoutCreationTime(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	broken := trackedRecord("fwd-1", "", time.Time{})
	broken.ReminderCount = 1
	require.NoError(t, store.Put(ctx, broken))

	clock := newStubClock(baseTime)
	escalator, messenger := newTestEscalator(t, store, clock)

	report, err := escalator.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Repaired)
	assert.Equal(t, 0, report.Reminded)

	record, err := store.Get(ctx, "fwd-1")
	require.NoError(t, err)
	assert.Equal(t, baseTime, record.CreatedAt)
	assert.Equal(t, 0, record.ReminderCount)

	clock.Advance(15 * time.Minute)
	expectReminder(messenger, "fwd-1").Return(nil).Once()
	_, err = escalator.Tick(ctx)
	require.NoError(t, err)
}

func TestEscalatorPersistsOncePerTickOnlyWhenChanged(t *testing.T) {
	initial := domain.NewTrackingSnapshot()
	initial.ByMessage["fwd-1"] = trackedRecord("fwd-1", "", baseTime)
	initial.ByMessage["fwd-2"] = trackedRecord("fwd-2", "", baseTime.Add(time.Minute))

	repo := mocks.NewMockTrackingRepository(t)
	repo.EXPECT().Load(mockAnyContext()).Return(initial, nil)
	store := OpenTrackingStore(context.Background(), repo, nil)
	defer store.Close()

	clock := newStubClock(baseTime.Add(5 * time.Minute))
	escalator, messenger := newTestEscalator(t, store, clock)

	// Nothing due: no write.
	_, err := escalator.Tick(context.Background())
	require.NoError(t, err)

	clock.Set(baseTime.Add(20 * time.Minute))
	expectReminder(messenger, "fwd-1").Return(nil).Once()
	expectReminder(messenger, "fwd-2").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Once()

	report, err := escalator.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Changed)
}

func TestEscalatorKeepsResolutionMadeDuringReminderSend(t *testing.T) {
	store, repo := newFileStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, trackedRecord("fwd-1", "", baseTime)))

	clock := newStubClock(baseTime.Add(15 * time.Minute))
	escalator, messenger := newTestEscalator(t, store, clock)

	// A reaction lands while the reminder is in flight.
	expectReminder(messenger, "fwd-1").RunAndReturn(func(ctx context.Context, _ domain.ConversationID, id domain.MessageID, _ string) error {
		_, err := store.Resolve(ctx, id, clock.Now())
		return err
	}).Once()

	_, err := escalator.Tick(ctx)
	require.NoError(t, err)

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	record := persisted.ByMessage["fwd-1"]
	assert.True(t, record.Resolved)
	assert.Equal(t, 1, record.ReminderCount)
}

func TestEscalatorRunStopsOnStop(t *testing.T) {
	store, _ := newFileStore(t)
	escalator, _ := newTestEscalator(t, store, newStubClock(baseTime))
	escalator.interval = time.Millisecond

	finished := make(chan struct{})
	go func() {
		escalator.Run(context.Background())
		close(finished)
	}()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	escalator.Stop(stopCtx)
	escalator.Stop(stopCtx)

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("escalator did not stop")
	}
}

func TestEscalatorOptionsIgnoreInvalidValues(t *testing.T) {
	store, _ := newFileStore(t)
	escalator := NewEscalator(store, mocks.NewMockMessenger(t),
		WithSweepInterval(0),
		WithSLAPolicy(domain.SLAPolicy{Step: 5 * time.Minute}),
		nil,
	)

	assert.Equal(t, DefaultSweepInterval, escalator.interval)
	assert.Equal(t, domain.SLAPolicy{Step: 5 * time.Minute, MaxReminders: domain.DefaultMaxReminders}, escalator.Policy())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
