package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/render"
)

// tickMsg carries a display timer tick into the program loop.
type tickMsg app.Tick

// Model adapts an app.Session to Bubble Tea.
type Model struct {
	session *app.Session
	keys    keyMap
	help    help.Model
	styles  Styles
	view    render.View
	cursor  int
	err     string
	width   int
}

func NewModel(session *app.Session) Model {
	m := Model{
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Screen reports the screen currently drawn.
func (m Model) Screen() domain.Screen {
	return m.view.Screen
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tickMsg:
		m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.session.Close()
		return m, tea.Quit
	}

	ctx := context.Background()
	m.err = ""
	var err error

	switch m.view.Screen {
	case domain.ScreenStart:
		if key.Matches(msg, m.keys.Start) {
			err = m.session.Start(ctx)
			m.cursor = 0
		}
	case domain.ScreenInProgress:
		options := m.view.Quiz.Options
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(options)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Choose):
			err = m.session.SelectOption(options[m.cursor].Text)
		case key.Matches(msg, m.keys.Next):
			err = m.session.Advance(ctx)
			if err == nil {
				m.cursor = 0
			}
		default:
			if i, ok := optionIndex(msg.String(), len(options)); ok {
				m.cursor = i
				err = m.session.SelectOption(options[i].Text)
			}
		}
	case domain.ScreenResult:
		if key.Matches(msg, m.keys.Restart) {
			err = m.session.Restart()
		}
	}

	if err != nil {
		m.err = describe(err)
	}
	m.refresh()
	return m, nil
}

// optionIndex maps "1".."9" and "a".."i" to an option position.
func optionIndex(s string, n int) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 1 && i <= n {
		return i - 1, true
	}
	if c := s[0]; c >= 'a' && int(c-'a') < n {
		return int(c - 'a'), true
	}
	return 0, false
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoSelection):
		return "Select an option first."
	case errors.Is(err, domain.ErrUnknownOption):
		return "That is not one of the options."
	default:
		return err.Error()
	}
}

func (m *Model) refresh() {
	m.view = render.Render(m.session.Snapshot(), m.session.Questions())
	screen := m.view.Screen
	m.keys.Start.SetEnabled(screen == domain.ScreenStart)
	m.keys.Up.SetEnabled(screen == domain.ScreenInProgress)
	m.keys.Down.SetEnabled(screen == domain.ScreenInProgress)
	m.keys.Choose.SetEnabled(screen == domain.ScreenInProgress)
	m.keys.Next.SetEnabled(screen == domain.ScreenInProgress && m.view.Quiz.CanAdvance)
	m.keys.Restart.SetEnabled(screen == domain.ScreenResult)
}

func (m Model) View() string {
	var body string
	switch m.view.Screen {
	case domain.ScreenInProgress:
		body = m.quizView(m.view.Quiz)
	case domain.ScreenResult:
		body = m.resultView(m.view.Result)
	default:
		body = m.startView(m.view.Start)
	}
	if m.err != "" {
		body += "\n" + m.styles.Error.Render(m.err)
	}
	return m.styles.Card.Render(body) + "\n" + m.help.View(m.keys) + "\n"
}

func (m Model) startView(v *render.StartView) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("🏆 " + v.Title))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d questions. Answer fast: the bonus shrinks as the clock runs.", v.QuestionCount)))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Button.Render(v.StartLabel))
	return sb.String()
}

func (m Model) quizView(v *render.QuizView) string {
	var sb strings.Builder
	header := m.styles.Title.Render(fmt.Sprintf("Question %d of %d", v.Number, v.Total))
	clock := m.styles.Subtitle.Render("⏱ " + v.Elapsed)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header, "   ", clock))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Progress %d%%", v.ProgressPercent)))
	sb.WriteString("\n\n")

	cells := make([]string, len(v.Navigator))
	for i, ind := range v.Navigator {
		cells[i] = m.styles.Indicators[ind.Status].Render(strconv.Itoa(ind.Number))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Prompt.Render(v.Prompt))
	sb.WriteString("\n\n")
	for i, opt := range v.Options {
		cursor := " "
		if i == m.cursor {
			cursor = m.styles.OptionCursor.String()
		}
		line := fmt.Sprintf("%s. %s", opt.Label, opt.Text)
		style := m.styles.Option
		if opt.Selected {
			style = m.styles.OptionSelected
			line += " ✓"
		}
		sb.WriteString(cursor + style.Render(line) + "\n")
	}
	sb.WriteString("\n")

	button := m.styles.ButtonDisabled
	if v.CanAdvance {
		button = m.styles.Button
	}
	sb.WriteString(button.Render(v.AdvanceLabel))
	return sb.String()
}

func (m Model) resultView(v *render.ResultView) string {
	var sb strings.Builder
	sb.WriteString(emblems[v.Emblem] + " " + m.styles.Title.Render("Quiz Completed!"))
	sb.WriteString("\n")
	if v.NewHighScore {
		sb.WriteString(m.styles.Badge.Render("New High Score!"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	rated := m.styles.Ratings[v.Rating]
	row := func(label, value string, style lipgloss.Style) {
		sb.WriteString(m.styles.Label.Render(label) + style.Render(value) + "\n")
	}
	row("Correct Answers", fmt.Sprintf("%d / %d", v.Score, v.Total), rated)
	row("Accuracy", fmt.Sprintf("%d%%", v.Percentage), rated)
	row("Bonus", strconv.Itoa(v.Bonus), m.styles.Value)
	row("Total Score", strconv.Itoa(v.TotalScore), m.styles.Value)
	if v.TimeTaken != "" {
		row("Time Taken", v.TimeTaken, m.styles.Value)
	}
	row("Avg. per Question", v.AveragePerQuestion, m.styles.Value)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Button.Render(v.RestartLabel))
	return sb.String()
}

// Run plays the quiz in the terminal until the user quits.
func Run(ctx context.Context, questions domain.QuestionSet, scores *app.HighScores, tick time.Duration, logger *zap.Logger, opts ...tea.ProgramOption) error {
	var program *tea.Program
	session, err := app.NewSession(questions, scores,
		app.WithID("terminal"),
		app.WithLogger(logger),
		app.WithTickInterval(tick),
		app.WithTickObserver(func(t app.Tick) { program.Send(tickMsg(t)) }),
	)
	if err != nil {
		return err
	}
	defer session.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	program = tea.NewProgram(NewModel(session), opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
