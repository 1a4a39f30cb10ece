package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now    time.Time
	Policy domain.SLAPolicy
}

func renderView(records []domain.TrackingRecord, opts RenderOptions, s styles) string {
	unresolved := 0
	for _, record := range records {
		if !record.Resolved {
			unresolved++
		}
	}

	lines := []string{
		s.title.Render("Tracked Requests"),
		s.header.Render(fmt.Sprintf("requests: %d  unresolved: %d", len(records), unresolved)),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No tracked requests."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.section.Render(renderRecord(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.TrackingRecord, opts RenderOptions, s styles) string {
	state := opts.Policy.State(record, opts.Now)

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.record.Render(recordTitle(record)),
		" ",
		s.state(string(state)).Render("["+string(state)+"]"),
	)

	author := strings.TrimSpace(record.AuthorDisplayName)
	if author == "" {
		author = string(record.AuthorID)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		s.detail.Render(fmt.Sprintf("route: %s -> %s", record.SourceConversation, record.DestinationConversation)),
		s.detail.Render(fmt.Sprintf("author: %s", author)),
		reminderLine(record, opts, s),
	)
}

func recordTitle(record domain.TrackingRecord) string {
	if !record.AccountRef.IsZero() {
		return fmt.Sprintf("CTA %s (%s)", record.AccountRef, record.ID)
	}
	return string(record.ID)
}

func reminderLine(record domain.TrackingRecord, opts RenderOptions, s styles) string {
	label := s.key.Render("reminders:")
	bar := renderProgressBar(record.ReminderCount, opts.Policy.MaxReminders, s)
	count := fmt.Sprintf("%d/%d", record.ReminderCount, opts.Policy.MaxReminders)

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", count)
	if next := nextLabel(record, opts); next != "" {
		line += " " + lipgloss.NewStyle().Foreground(dueColor(record, opts)).Render("("+next+")")
	}
	return line
}

func nextLabel(record domain.TrackingRecord, opts RenderOptions) string {
	if record.Resolved {
		if record.ResolvedAt.IsZero() {
			return "resolved"
		}
		return "resolved " + formatClock(record.ResolvedAt, opts.Now)
	}

	due, ok := opts.Policy.NextDue(record)
	if !ok {
		return "no reminders left"
	}
	if opts.Now.IsZero() {
		return "next " + formatClock(due, opts.Now)
	}
	if !due.After(opts.Now) {
		return fmt.Sprintf("overdue by %s", formatMinutes(opts.Now.Sub(due)))
	}
	return fmt.Sprintf("next in %s (%s)", formatMinutes(due.Sub(opts.Now)), formatClock(due, opts.Now))
}

func renderProgressBar(sent, max int, s styles) string {
	if max <= 0 {
		return ""
	}

	const slot = 4
	filled := sent
	if filled < 0 {
		filled = 0
	}
	if filled > max {
		filled = max
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled*slot)),
		s.barEmpty.Render(strings.Repeat("-", (max-filled)*slot)),
		s.barBracket.Render("]"),
	)
}

func formatMinutes(d time.Duration) string {
	minutes := int(math.Ceil(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func formatClock(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04")
	}

	return at.Format("15:04 on 02 Jan")
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, faded at min and bright at max.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}

// dueColor brightens as the next reminder approaches.
func dueColor(record domain.TrackingRecord, opts RenderOptions) lipgloss.Color {
	due, ok := opts.Policy.NextDue(record)
	if !ok || opts.Now.IsZero() || !due.After(opts.Now) || opts.Policy.Step <= 0 {
		return lipgloss.Color("255")
	}

	remaining := due.Sub(opts.Now)
	inverted := opts.Policy.Step.Seconds() - remaining.Seconds()
	return interpolateColor(inverted, 0, opts.Policy.Step.Seconds())
}
