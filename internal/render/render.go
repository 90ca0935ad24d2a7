// Package render turns journal entries and statistics into terminal text.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/stats"
)

const (
	barWidth       = 24
	noCommentLabel = "No comment"
	noDataLabel    = "no data"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(5).
		Align(lipgloss.Right)

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// LongDate formats d as "2 January 2024".
func LongDate(d models.Date) string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month, d.Year)
}

// MoodStyle returns the colour used for a rating.
func MoodStyle(m models.Mood) lipgloss.Style {
	switch m {
	case models.MoodBad:
		return badStyle
	case models.MoodGood:
		return goodStyle
	default:
		return normalStyle
	}
}

// averageStyle colours a daily mean by the rating it rounds towards.
func averageStyle(avg float64) lipgloss.Style {
	switch {
	case avg < 1.5:
		return badStyle
	case avg < 2.5:
		return normalStyle
	default:
		return goodStyle
	}
}

// Comment returns the comment or a placeholder for blank ones.
func Comment(c string) string {
	if strings.TrimSpace(c) == "" {
		return placeholderStyle.Render(noCommentLabel)
	}
	return commentStyle.Render(c)
}

// EntryLine renders one entry as "#id  date  emoji label  comment".
func EntryLine(e models.MoodEntry) string {
	return strings.Join([]string{
		idStyle.Render(fmt.Sprintf("#%d", e.ID)),
		dateStyle.Render(LongDate(e.Date)),
		MoodStyle(e.Mood).Render(e.Mood.Emoji() + " " + e.Mood.Label()),
		Comment(e.Comment),
	}, "  ")
}

// Entries renders every entry on its own line, in the given order.
func Entries(entries []models.MoodEntry) string {
	if len(entries) == 0 {
		return placeholderStyle.Render("No entries yet.")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = EntryLine(e)
	}
	return strings.Join(lines, "\n")
}

// Bar returns a bar for avg scaled against the highest rating.
func Bar(avg float64, width int) string {
	if width <= 0 {
		width = barWidth
	}
	top := float64(models.MoodGood.Ordinal())
	n := int(math.Round(avg / top * float64(width)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// DailyChart draws one row per point. Points without data are labelled
// instead of being drawn as a zero-length bar.
func DailyChart(series []models.DailyAggregate) string {
	var b strings.Builder
	for i, p := range series {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(dateStyle.Render(p.Date.String()))
		b.WriteString("  ")
		if !p.HasData() {
			b.WriteString(placeholderStyle.Render(noDataLabel))
			continue
		}
		style := averageStyle(p.Average)
		b.WriteString(style.Render(Bar(p.Average, barWidth)))
		fmt.Fprintf(&b, " %.2f", p.Average)
	}
	return b.String()
}

// Buckets renders the per-rating counts on one line.
func Buckets(c models.BucketCounts) string {
	return strings.Join([]string{
		badStyle.Render(fmt.Sprintf("%s %d", models.MoodBad.Emoji(), c.Bad)),
		normalStyle.Render(fmt.Sprintf("%s %d", models.MoodNormal.Emoji(), c.Normal)),
		goodStyle.Render(fmt.Sprintf("%s %d", models.MoodGood.Emoji(), c.Good)),
	}, "   ")
}

// Header renders a section title.
func Header(title string) string {
	return headerStyle.Render(title)
}

// Summary renders the chart, bucket counts and mean for one window.
func Summary(s stats.Summary) string {
	title := fmt.Sprintf("Last %d days to %s", s.WindowDays, LongDate(s.Reference))
	mean := placeholderStyle.Render("No entries in this window.")
	if s.DaysWithData > 0 {
		mean = fmt.Sprintf("Average %.2f over %d of %d days", s.Mean, s.DaysWithData, s.WindowDays)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		Header(title),
		DailyChart(s.Daily),
		"",
		Buckets(s.Buckets)+dateStyle.Render(fmt.Sprintf("   (%s start)", s.BucketWindow)),
		mean,
	)
}
