package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mfekete/quizgen/internal/ui/theme"
)

// TimerBar displays the remaining answer time as a shrinking bar.
type TimerBar struct {
	Remaining int
	Total     int
	Width     int
}

// View renders the timer bar with the seconds left.
func (t TimerBar) View() string {
	barWidth := t.Width - 8
	if barWidth < 4 {
		barWidth = 4
	}

	frac := 0.0
	if t.Total > 0 {
		frac = float64(t.Remaining) / float64(t.Total)
	}
	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fillColor := theme.Secondary
	numStyle := theme.TimerCalm
	if t.Remaining <= 3 {
		fillColor = theme.Accent
		numStyle = theme.TimerUrgent
	}

	bar := lipgloss.NewStyle().Background(fillColor).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return bar + numStyle.Render(fmt.Sprintf("  %2ds", t.Remaining))
}
