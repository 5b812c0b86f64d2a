// Package player is an interactive terminal runner for saved quizzes:
// one question at a time, a countdown per question, and a score at
// the end.
package player

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mfekete/quizgen/internal/quiz"
	"github.com/mfekete/quizgen/internal/ui/components"
	"github.com/mfekete/quizgen/internal/ui/theme"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseReveal
	phaseSummary
)

type timerTickMsg time.Time

// Model is the root Bubble Tea model for playing one quiz.
type Model struct {
	title     string
	questions []quiz.Question

	idx       int
	choice    components.Choice
	remaining int
	phase     phase
	score     int

	width  int
	height int
}

// New creates a player for the given quiz.
func New(title string, q *quiz.Quiz) Model {
	m := Model{
		title:     title,
		questions: q.Questions,
	}
	m.loadQuestion()
	return m
}

func (m *Model) loadQuestion() {
	qi := m.questions[m.idx]
	if qi.Answer.Type == quiz.AnswerTrueFalse {
		m.choice = components.NewTrueFalse(qi.Answer.TrueFalse.IsTrue)
	} else {
		options := make([]string, len(qi.Answer.Choices))
		for i, opt := range qi.Answer.Choices {
			options[i] = opt.Text
		}
		m.choice = components.NewChoice(options, qi.Answer.CorrectChoice())
	}
	m.remaining = qi.WaitSeconds
	m.phase = phaseQuestion
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerTickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phaseQuestion {
		return m, tickCmd()
	}

	m.remaining--
	if m.remaining <= 0 {
		m.choice = m.choice.Submit(true)
		m.phase = phaseReveal
	}
	return m, tickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseQuestion:
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			if m.choice.IsCorrect() {
				m.score++
			}
			m.phase = phaseReveal
		}
		return m, cmd

	case phaseReveal:
		if msg.String() == "enter" {
			if m.idx+1 >= len(m.questions) {
				m.phase = phaseSummary
				return m, nil
			}
			m.idx++
			m.loadQuestion()
		}
		return m, nil

	case phaseSummary:
		if msg.String() == "enter" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	var content string
	if m.phase == phaseSummary {
		content = m.summaryView()
	} else {
		content = m.questionView()
	}

	v.SetContent(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content))
	return v
}

func (m Model) questionView() string {
	qi := m.questions[m.idx]

	header := theme.Subtitle.Render(fmt.Sprintf("%s  ·  question %d of %d", m.title, m.idx+1, len(m.questions)))
	question := theme.Title.Render(qi.Text)

	timer := components.TimerBar{
		Remaining: m.remaining,
		Total:     qi.WaitSeconds,
		Width:     48,
	}.View()

	body := header + "\n\n" + question + "\n\n" + m.choice.View() + "\n" + timer

	if m.phase == phaseReveal {
		verdict := theme.Incorrect.Render("Wrong!")
		if m.choice.IsCorrect() {
			verdict = theme.Correct.Render("Correct!")
		} else if m.choice.ChosenIndex == -1 {
			verdict = theme.Incorrect.Render("Time is up!")
		}
		body += "\n" + verdict + "\n" + theme.Hint.Render("Enter to continue")
	}

	return theme.Card.Render(body)
}

func (m Model) summaryView() string {
	body := theme.Title.Render("Quiz complete!") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Score: %d / %d", m.score, len(m.questions))) + "\n\n" +
		theme.Hint.Render("Enter to exit")
	return theme.Card.Render(body)
}

// Run plays the quiz in the terminal.
func Run(title string, q *quiz.Quiz) error {
	p := tea.NewProgram(New(title, q))
	_, err := p.Run()
	return err
}
