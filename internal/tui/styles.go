// Package tui is the terminal front-end: a Bubble Tea program that draws the
// render package's views and forwards key presses to the quiz session.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"quiz-widget/internal/domain"
)

var (
	Lime    = lipgloss.Color("#84CC16")
	Yellow  = lipgloss.Color("#FDE047")
	Cyan    = lipgloss.Color("#0E7490")
	Red     = lipgloss.Color("#DC2626")
	Green   = lipgloss.Color("#16A34A")
	Blue    = lipgloss.Color("#2563EB")
	Amber   = lipgloss.Color("#CA8A04")
	Slate   = lipgloss.Color("#475569")
	Muted   = lipgloss.Color("#94A3B8")
	Surface = lipgloss.Color("#F1F5F9")
)

// Styles holds every lipgloss style the views use.
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Card           lipgloss.Style
	Prompt         lipgloss.Style
	Option         lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Badge          lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Error          lipgloss.Style
	Indicators     map[domain.IndicatorStatus]lipgloss.Style
	Ratings        map[domain.Rating]lipgloss.Style
}

func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1).MarginRight(1)
	value := lipgloss.NewStyle().Bold(true)
	return Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(Cyan),
		Subtitle:       lipgloss.NewStyle().Foreground(Slate),
		Card:           lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Lime).Padding(1, 2),
		Prompt:         lipgloss.NewStyle().Bold(true),
		Option:         lipgloss.NewStyle().PaddingLeft(2),
		OptionCursor:   lipgloss.NewStyle().PaddingLeft(1).Foreground(Cyan).SetString(">"),
		OptionSelected: lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(Lime),
		Button:         lipgloss.NewStyle().Bold(true).Foreground(Cyan).Background(Yellow).Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().Foreground(Muted).Background(Surface).Padding(0, 2),
		Badge:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(Amber).Padding(0, 1),
		Label:          lipgloss.NewStyle().Foreground(Slate).Width(20),
		Value:          value,
		Error:          lipgloss.NewStyle().Foreground(Red),
		Indicators: map[domain.IndicatorStatus]lipgloss.Style{
			domain.IndicatorCurrent:    cell.Foreground(lipgloss.Color("#FFFFFF")).Background(Red),
			domain.IndicatorAnswered:   cell.Foreground(Green).Background(lipgloss.Color("#DCFCE7")),
			domain.IndicatorUnanswered: cell.Foreground(Slate).Background(Surface),
		},
		Ratings: map[domain.Rating]lipgloss.Style{
			domain.RatingExcellent: value.Foreground(Green),
			domain.RatingGood:      value.Foreground(Blue),
			domain.RatingFair:      value.Foreground(Amber),
			domain.RatingPoor:      value.Foreground(Red),
		},
	}
}

var emblems = map[domain.Emblem]string{
	domain.EmblemTrophy: "🏆",
	domain.EmblemParty:  "🎉",
	domain.EmblemClap:   "👏",
	domain.EmblemThumbs: "👍",
	domain.EmblemFlex:   "💪",
}
