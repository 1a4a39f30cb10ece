package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/bnema/techrelay/internal/metrics"
	"github.com/bnema/techrelay/internal/ports"
	"go.uber.org/zap"
)

// ErrNotPersisted wraps write failures. The mutation that triggered the
// write is kept in memory and carried by the next successful write.
var ErrNotPersisted = errors.New("tracking document not persisted")

var errAlreadyTracked = errors.New("message is already tracked")

// TrackingStore owns every tracking record. A single goroutine applies
// reads and mutations one at a time and rewrites the document after each
// mutation, so concurrent callers never overwrite each other's changes.
type TrackingStore struct {
	repo ports.TrackingRepository
	log  *zap.SugaredLogger

	ops       chan storeOp
	closing   chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// owned by run
	state domain.TrackingSnapshot
	dirty bool
}

type storeOp struct {
	apply func(state *domain.TrackingSnapshot) (changed bool, err error)
	force bool
	done  chan error
}

// ReminderAck records a delivered reminder. SeenCount is the reminder count
// the sender observed; the ack is dropped if the record moved on since.
type ReminderAck struct {
	ID        domain.MessageID
	SeenCount int
}

// Sweep is the outcome of one escalation pass, applied in one write.
type Sweep struct {
	Now          time.Time
	MaxReminders int
	Repaired     []domain.MessageID
	Reminded     []ReminderAck
}

// OpenTrackingStore loads the persisted document and starts the writer. A
// missing or unreadable document yields an empty store.
func OpenTrackingStore(ctx context.Context, repo ports.TrackingRepository, log *zap.SugaredLogger) *TrackingStore {
	s := &TrackingStore{
		repo:    repo,
		log:     logging.OrNop(log),
		ops:     make(chan storeOp),
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.state = s.load(ctx)
	go s.run()
	return s
}

func (s *TrackingStore) load(ctx context.Context) domain.TrackingSnapshot {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		metrics.StoreLoadFailures.Inc()
		s.log.Warnw("Tracking document unreadable, starting with an empty store", "error", err)
		return domain.NewTrackingSnapshot()
	}
	if snapshot.ByMessage == nil || snapshot.ByAccount == nil {
		fresh := domain.NewTrackingSnapshot()
		for id, record := range snapshot.ByMessage {
			fresh.ByMessage[id] = record
		}
		for ref, id := range snapshot.ByAccount {
			fresh.ByAccount[ref] = id
		}
		snapshot = fresh
	}
	if dropped := snapshot.Prune(); dropped > 0 {
		s.log.Warnw("Dropped account index entries without a record", "count", dropped)
	}
	s.log.Infow("Tracking store loaded", "records", len(snapshot.ByMessage), "accounts", len(snapshot.ByAccount))
	return snapshot
}

func (s *TrackingStore) run() {
	defer close(s.stopped)
	for {
		select {
		case op := <-s.ops:
			changed, err := op.apply(&s.state)
			if err == nil && (changed || op.force || s.dirty) {
				err = s.persist()
			}
			op.done <- err
		case <-s.closing:
			if s.dirty {
				_ = s.persist()
			}
			return
		}
	}
}

func (s *TrackingStore) persist() error {
	if err := s.repo.Save(context.Background(), s.state); err != nil {
		s.dirty = true
		metrics.StoreSaveFailures.Inc()
		s.log.Errorw("Failed to write tracking document", "records", len(s.state.ByMessage), "error", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	s.dirty = false
	return nil
}

func (s *TrackingStore) do(ctx context.Context, force bool, apply func(state *domain.TrackingSnapshot) (bool, error)) error {
	op := storeOp{apply: apply, force: force, done: make(chan error, 1)}

	select {
	case s.ops <- op:
	case <-s.closing:
		return domain.ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-op.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TrackingStore) read(ctx context.Context, apply func(state *domain.TrackingSnapshot)) error {
	return s.do(ctx, false, func(state *domain.TrackingSnapshot) (bool, error) {
		apply(state)
		return false, nil
	})
}

func (s *TrackingStore) Get(ctx context.Context, id domain.MessageID) (domain.TrackingRecord, error) {
	var (
		record domain.TrackingRecord
		found  bool
	)
	if err := s.read(ctx, func(state *domain.TrackingSnapshot) {
		record, found = state.ByMessage[id]
	}); err != nil {
		return domain.TrackingRecord{}, err
	}
	if !found {
		return domain.TrackingRecord{}, domain.ErrRecordNotFound
	}
	return record, nil
}

func (s *TrackingStore) GetByAccount(ctx context.Context, ref domain.AccountRef) (domain.TrackingRecord, error) {
	var (
		record domain.TrackingRecord
		found  bool
	)
	if err := s.read(ctx, func(state *domain.TrackingSnapshot) {
		id, ok := state.ByAccount[ref]
		if !ok {
			return
		}
		record, found = state.ByMessage[id]
	}); err != nil {
		return domain.TrackingRecord{}, err
	}
	if !found {
		return domain.TrackingRecord{}, domain.ErrRecordNotFound
	}
	return record, nil
}

// Put tracks a newly forwarded request. A record sharing an account
// reference with an older one takes over the account index entry.
func (s *TrackingStore) Put(ctx context.Context, record domain.TrackingRecord) error {
	if record.ID.IsZero() {
		return errors.New("tracking record id is required")
	}

	return s.do(ctx, false, func(state *domain.TrackingSnapshot) (bool, error) {
		if _, exists := state.ByMessage[record.ID]; exists {
			return false, fmt.Errorf("%w: %s", errAlreadyTracked, record.ID)
		}
		state.ByMessage[record.ID] = record
		if !record.AccountRef.IsZero() {
			if previous, ok := state.ByAccount[record.AccountRef]; ok && previous != record.ID {
				s.log.Infow("Account reference now points at a newer request",
					"account", record.AccountRef, "previous", previous, "current", record.ID)
			}
			state.ByAccount[record.AccountRef] = record.ID
		}
		return true, nil
	})
}

// ListUnresolved returns unresolved records oldest first.
func (s *TrackingStore) ListUnresolved(ctx context.Context) ([]domain.TrackingRecord, error) {
	var records []domain.TrackingRecord
	if err := s.read(ctx, func(state *domain.TrackingSnapshot) {
		records = make([]domain.TrackingRecord, 0, len(state.ByMessage))
		for _, record := range state.ByMessage {
			if !record.Resolved {
				records = append(records, record)
			}
		}
	}); err != nil {
		return nil, err
	}

	sortRecords(records)
	return records, nil
}

// Snapshot returns a deep copy of both indices.
func (s *TrackingStore) Snapshot(ctx context.Context) (domain.TrackingSnapshot, error) {
	var snapshot domain.TrackingSnapshot
	err := s.read(ctx, func(state *domain.TrackingSnapshot) {
		snapshot = state.Clone()
	})
	return snapshot, err
}

// Resolve marks a record acknowledged. changed is false when the record was
// already resolved.
func (s *TrackingStore) Resolve(ctx context.Context, id domain.MessageID, now time.Time) (changed bool, err error) {
	err = s.do(ctx, false, func(state *domain.TrackingSnapshot) (bool, error) {
		record, ok := state.ByMessage[id]
		if !ok {
			return false, domain.ErrRecordNotFound
		}
		if !record.Resolve(now) {
			return false, nil
		}
		state.ByMessage[id] = record
		changed = true
		return true, nil
	})
	return changed, err
}

// ApplySweep repairs records and counts delivered reminders in a single
// write. It returns the number of records that changed.
func (s *TrackingStore) ApplySweep(ctx context.Context, sweep Sweep) (int, error) {
	if len(sweep.Repaired) == 0 && len(sweep.Reminded) == 0 {
		return 0, nil
	}

	changed := 0
	err := s.do(ctx, false, func(state *domain.TrackingSnapshot) (bool, error) {
		for _, id := range sweep.Repaired {
			record, ok := state.ByMessage[id]
			if !ok || !record.NeedsRepair() {
				continue
			}
			record.Repair(sweep.Now)
			state.ByMessage[id] = record
			changed++
		}
		for _, ack := range sweep.Reminded {
			record, ok := state.ByMessage[ack.ID]
			if !ok || record.ReminderCount != ack.SeenCount || record.ReminderCount >= sweep.MaxReminders {
				continue
			}
			record.ReminderCount++
			state.ByMessage[ack.ID] = record
			changed++
		}
		return changed > 0, nil
	})
	return changed, err
}

// Save rewrites the document from memory.
func (s *TrackingStore) Save(ctx context.Context) error {
	return s.do(ctx, true, func(*domain.TrackingSnapshot) (bool, error) {
		return false, nil
	})
}

// Close stops the writer after pending operations and flushes any
// unpersisted state.
func (s *TrackingStore) Close() {
	s.closeOnce.Do(func() {
		close(s.closing)
	})
	<-s.stopped
}

func sortRecords(records []domain.TrackingRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
