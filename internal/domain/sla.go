package domain

import "time"

const (
	DefaultReminderStep = 15 * time.Minute
	DefaultMaxReminders = 2
)

// SLAPolicy decides when an unresolved record is owed a reminder. Reminder
// n (1-based) falls due Step*n after the record was created.
type SLAPolicy struct {
	Step         time.Duration
	MaxReminders int
}

func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{Step: DefaultReminderStep, MaxReminders: DefaultMaxReminders}
}

// NextDue returns when the next reminder falls due. ok is false once the
// record is resolved or has exhausted its reminders.
func (p SLAPolicy) NextDue(record TrackingRecord) (time.Time, bool) {
	if record.Resolved || record.ReminderCount >= p.MaxReminders {
		return time.Time{}, false
	}
	return record.CreatedAt.Add(p.Step * time.Duration(record.ReminderCount+1)), true
}

func (p SLAPolicy) Due(record TrackingRecord, now time.Time) bool {
	due, ok := p.NextDue(record)
	return ok && !now.Before(due)
}

type SLAState string

const (
	SLAPending   SLAState = "pending"
	SLAOverdue   SLAState = "overdue"
	SLAExhausted SLAState = "exhausted"
	SLAResolved  SLAState = "resolved"
)

func (p SLAPolicy) State(record TrackingRecord, now time.Time) SLAState {
	switch {
	case record.Resolved:
		return SLAResolved
	case record.ReminderCount >= p.MaxReminders:
		return SLAExhausted
	case p.Due(record, now):
		return SLAOverdue
	default:
		return SLAPending
	}
}
