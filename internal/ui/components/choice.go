package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mfekete/quizgen/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D"}

// Choice is an answer selector for both question kinds: four options
// for multiple choice, "True"/"False" for true/false questions.
type Choice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewChoice creates a selector over the given options.
func NewChoice(options []string, correctIndex int) Choice {
	return Choice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// NewTrueFalse creates a two-option selector for a true/false question.
func NewTrueFalse(isTrue bool) Choice {
	correct := 1
	if isTrue {
		correct = 0
	}
	return NewChoice([]string{"True", "False"}, correct)
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
		c.ChosenIndex = c.Selected
	}

	return c, nil
}

// Submit locks in the current selection, or no answer when the timer
// ran out before the player chose.
func (c Choice) Submit(timedOut bool) Choice {
	c.Submitted = true
	if timedOut {
		c.ChosenIndex = -1
	} else {
		c.ChosenIndex = c.Selected
	}
	return c
}

// View renders the options with reveal colors after submission.
func (c Choice) View() string {
	s := ""
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, choiceLabels[i], opt)

		switch {
		case c.Submitted && i == c.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case c.Submitted && i == c.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case c.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Body.Render(line) + "\n"
		}
	}
	return s
}

// IsCorrect reports whether the player chose the correct answer.
func (c Choice) IsCorrect() bool {
	return c.Submitted && c.ChosenIndex == c.CorrectIndex
}
