package domain

import "time"

// TrackingRecord follows one forwarded request until somebody in the
// destination conversation acknowledges it.
type TrackingRecord struct {
	// ID is the id of the forwarded copy in the destination conversation.
	ID                      MessageID
	SourceConversation      ConversationID
	DestinationConversation ConversationID
	AuthorID                AuthorID
	AuthorDisplayName       string
	AccountRef              AccountRef
	CreatedAt               time.Time
	ReminderCount           int
	Resolved                bool
	ResolvedAt              time.Time
}

// Resolve marks the record acknowledged. It reports false when the record
// was already resolved.
func (r *TrackingRecord) Resolve(now time.Time) bool {
	if r.Resolved {
		return false
	}
	r.Resolved = true
	r.ResolvedAt = now
	return true
}

// NeedsRepair reports records persisted without a creation time.
func (r TrackingRecord) NeedsRepair() bool {
	return r.CreatedAt.IsZero()
}

// Repair backfills a missing creation time and restarts the reminder cycle.
func (r *TrackingRecord) Repair(now time.Time) {
	r.CreatedAt = now
	r.ReminderCount = 0
}

// TrackingSnapshot is the full persisted state: records by forwarded
// message id, plus the account index pointing back into ByMessage.
type TrackingSnapshot struct {
	ByMessage map[MessageID]TrackingRecord
	ByAccount map[AccountRef]MessageID
}

func NewTrackingSnapshot() TrackingSnapshot {
	return TrackingSnapshot{
		ByMessage: map[MessageID]TrackingRecord{},
		ByAccount: map[AccountRef]MessageID{},
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s TrackingSnapshot) Clone() TrackingSnapshot {
	out := TrackingSnapshot{
		ByMessage: make(map[MessageID]TrackingRecord, len(s.ByMessage)),
		ByAccount: make(map[AccountRef]MessageID, len(s.ByAccount)),
	}
	for id, record := range s.ByMessage {
		out.ByMessage[id] = record
	}
	for ref, id := range s.ByAccount {
		out.ByAccount[ref] = id
	}
	return out
}

// Prune drops account entries that point at unknown records, keeping every
// account-reachable record reachable by message id.
func (s *TrackingSnapshot) Prune() int {
	dropped := 0
	for ref, id := range s.ByAccount {
		if _, ok := s.ByMessage[id]; !ok {
			delete(s.ByAccount, ref)
			dropped++
		}
	}
	return dropped
}
