package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/bnema/techrelay/internal/metrics"
	"github.com/bnema/techrelay/internal/ports"
	"go.uber.org/zap"
)

// DefaultSweepInterval is how often unresolved requests are checked.
const DefaultSweepInterval = time.Minute

// Escalator reminds destination conversations about requests nobody has
// acknowledged, quoting the forwarded message.
type Escalator struct {
	store     *TrackingStore
	messenger ports.Messenger
	clock     ports.Clock
	policy    domain.SLAPolicy
	interval  time.Duration
	log       *zap.SugaredLogger

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type EscalatorOption func(*Escalator)

func WithSweepInterval(d time.Duration) EscalatorOption {
	return func(e *Escalator) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithSLAPolicy(p domain.SLAPolicy) EscalatorOption {
	return func(e *Escalator) {
		if p.Step > 0 {
			e.policy.Step = p.Step
		}
		if p.MaxReminders > 0 {
			e.policy.MaxReminders = p.MaxReminders
		}
	}
}

func WithEscalatorClock(c ports.Clock) EscalatorOption {
	return func(e *Escalator) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithEscalatorLogger(log *zap.SugaredLogger) EscalatorOption {
	return func(e *Escalator) {
		if log != nil {
			e.log = log
		}
	}
}

func NewEscalator(store *TrackingStore, messenger ports.Messenger, opts ...EscalatorOption) *Escalator {
	e := &Escalator{
		store:     store,
		messenger: messenger,
		clock:     ports.SystemClock{},
		policy:    domain.DefaultSLAPolicy(),
		interval:  DefaultSweepInterval,
		log:       logging.OrNop(nil),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *Escalator) Policy() domain.SLAPolicy {
	return e.policy
}

// Run sweeps on every interval until ctx is cancelled or Stop is called.
func (e *Escalator) Run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Infow("Escalator started", "interval", e.interval,
		"step", e.policy.Step, "max_reminders", e.policy.MaxReminders)
	for {
		select {
		case <-ctx.Done():
			e.log.Info("Escalator stopped")
			return
		case <-e.stopCh:
			e.log.Info("Escalator stopped")
			return
		case <-ticker.C:
			if _, err := e.Tick(ctx); err != nil {
				e.log.Errorw("Escalation sweep failed", "error", err)
			}
		}
	}
}

// Stop signals Run to return and waits for the sweep in progress, if any.
// It is safe to call more than once. ctx bounds the wait.
func (e *Escalator) Stop(ctx context.Context) {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	select {
	case <-e.done:
	case <-ctx.Done():
	}
}

// SweepReport summarizes one pass.
type SweepReport struct {
	Unresolved int
	Repaired   int
	Reminded   int
	Failed     int
	Changed    int
}

// Tick runs a single pass: it repairs records missing their creation time,
// sends every reminder that is due and records the deliveries in one write.
// A failed send leaves the record untouched so the next pass retries it.
func (e *Escalator) Tick(ctx context.Context) (SweepReport, error) {
	now := e.clock.Now()
	records, err := e.store.ListUnresolved(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("list unresolved: %w", err)
	}

	report := SweepReport{Unresolved: len(records)}
	sweep := Sweep{Now: now, MaxReminders: e.policy.MaxReminders}
	for _, record := range records {
		if record.NeedsRepair() {
			sweep.Repaired = append(sweep.Repaired, record.ID)
			e.log.Warnw("Tracking record without creation time, restarting its reminders", "forwarded", record.ID)
			continue
		}
		if !e.policy.Due(record, now) {
			continue
		}
		err := e.messenger.Reply(ctx, record.DestinationConversation, record.ID, ReminderNotice)
		if err != nil && !logging.IsTransient(err) {
			report.Failed++
			metrics.ReminderFailures.Inc()
			e.log.Warnw("Reminder not delivered", "forwarded", record.ID,
				"destination", record.DestinationConversation, "reminder", record.ReminderCount+1, "error", err)
			continue
		}
		sweep.Reminded = append(sweep.Reminded, ReminderAck{ID: record.ID, SeenCount: record.ReminderCount})
		metrics.RemindersSent.Inc()
		e.log.Infow("Reminder sent", "forwarded", record.ID,
			"destination", record.DestinationConversation, "reminder", record.ReminderCount+1)
	}
	report.Repaired = len(sweep.Repaired)
	report.Reminded = len(sweep.Reminded)
	metrics.RecordsRepaired.Add(float64(report.Repaired))
	metrics.UnresolvedRecords.Set(float64(report.Unresolved))

	changed, err := e.store.ApplySweep(ctx, sweep)
	report.Changed = changed
	if err != nil {
		return report, fmt.Errorf("record sweep: %w", err)
	}
	return report, nil
}
