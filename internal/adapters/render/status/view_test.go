package status

import (
	"testing"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id domain.MessageID, created time.Time) domain.TrackingRecord {
	return domain.TrackingRecord{
		ID:                      id,
		SourceConversation:      "src@g.us",
		DestinationConversation: "dst@g.us",
		AuthorID:                "573001234567@c.us",
		AuthorDisplayName:       "Ana",
		AccountRef:              "12345678",
		CreatedAt:               created,
	}
}

func TestRenderPendingRecord(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	output, err := Render([]domain.TrackingRecord{
		testRecord("fwd-1", now.Add(-8*time.Minute)),
	}, RenderOptions{Now: now, Policy: domain.DefaultSLAPolicy()})

	require.NoError(t, err)
	assert.Contains(t, output, "requests: 1  unresolved: 1")
	assert.Contains(t, output, "CTA 12345678 (fwd-1)")
	assert.Contains(t, output, "[pending]")
	assert.Contains(t, output, "route: src@g.us -> dst@g.us")
	assert.Contains(t, output, "author: Ana")
	assert.Contains(t, output, "reminders: [--------] 0/2")
	assert.Contains(t, output, "(next in 7 minutes (09:07))")
}

func TestRenderOverdueExhaustedAndResolvedRecords(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	overdue := testRecord("fwd-1", now.Add(-20*time.Minute))
	exhausted := testRecord("fwd-2", now.Add(-2*time.Hour))
	exhausted.AccountRef = ""
	exhausted.ReminderCount = 2
	resolved := testRecord("fwd-3", now.Add(-3*time.Hour))
	resolved.ReminderCount = 1
	resolved.Resolved = true
	resolved.ResolvedAt = now.Add(-26 * time.Hour)

	output, err := Render([]domain.TrackingRecord{overdue, exhausted, resolved},
		RenderOptions{Now: now, Policy: domain.DefaultSLAPolicy()})

	require.NoError(t, err)
	assert.Contains(t, output, "requests: 3  unresolved: 2")
	assert.Contains(t, output, "[overdue]")
	assert.Contains(t, output, "(overdue by 5 minutes)")
	assert.Contains(t, output, "fwd-2 [exhausted]")
	assert.Contains(t, output, "reminders: [========] 2/2 (no reminders left)")
	assert.Contains(t, output, "[resolved]")
	assert.Contains(t, output, "reminders: [====----] 1/2 (resolved 07:00 on 14 Oct)")
}

func TestRenderEmptyRecords(t *testing.T) {
	output, err := Render(nil, RenderOptions{Policy: domain.DefaultSLAPolicy()})

	require.NoError(t, err)
	assert.Contains(t, output, "requests: 0  unresolved: 0")
	assert.Contains(t, output, "No tracked requests.")
}

func TestRenderFallsBackToAuthorID(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	record := testRecord("fwd-1", now)
	record.AuthorDisplayName = " "

	output, err := Render([]domain.TrackingRecord{record}, RenderOptions{Now: now, Policy: domain.DefaultSLAPolicy()})

	require.NoError(t, err)
	assert.Contains(t, output, "author: 573001234567@c.us")
	assert.Contains(t, output, "(next in 15 minutes (09:15))")
}

func TestInterpolateColorClampsRange(t *testing.T) {
	assert.Equal(t, "240", string(interpolateColor(-5, 0, 10)))
	assert.Equal(t, "255", string(interpolateColor(50, 0, 10)))
	assert.Equal(t, "255", string(interpolateColor(1, 3, 3)))
}
