// Package render turns a session snapshot into one of the three quiz views.
// Nothing here mutates state; front-ends draw the views and forward intents.
package render

import (
	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
)

const (
	Title          = "Quiz Challenge"
	StartLabel     = "Start Quiz Challenge"
	NextLabel      = "Next Question"
	FinishLabel    = "Finish Quiz"
	RestartLabel   = "Take Quiz Again"
	notApplicable  = "N/A"
	firstOptionTag = 'A'
)

// Intent names accepted by the session, shared by every front-end.
const (
	IntentStart   = "start"
	IntentSelect  = "select"
	IntentNext    = "next"
	IntentRestart = "restart"
)

// View is a tagged union: exactly one of Start, Quiz or Result is set, matching Screen.
type View struct {
	Screen domain.Screen `json:"screen"`
	Start  *StartView    `json:"start,omitempty"`
	Quiz   *QuizView     `json:"quiz,omitempty"`
	Result *ResultView   `json:"result,omitempty"`
}

type StartView struct {
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
	StartLabel    string `json:"startLabel"`
}

type OptionView struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// Indicator is one cell of the question navigator.
type Indicator struct {
	Number int                    `json:"number"`
	Status domain.IndicatorStatus `json:"status"`
}

type QuizView struct {
	Number          int          `json:"number"`
	Total           int          `json:"total"`
	Prompt          string       `json:"prompt"`
	Options         []OptionView `json:"options"`
	CanAdvance      bool         `json:"canAdvance"`
	AdvanceLabel    string       `json:"advanceLabel"`
	ElapsedSeconds  int          `json:"elapsedSeconds"`
	Elapsed         string       `json:"elapsed"`
	ProgressPercent int          `json:"progressPercent"`
	Navigator       []Indicator  `json:"navigator"`
}

type ResultView struct {
	Score              int           `json:"score"`
	Total              int           `json:"total"`
	Percentage         int           `json:"percentage"`
	Bonus              int           `json:"bonus"`
	TotalScore         int           `json:"totalScore"`
	TimeTakenSeconds   int           `json:"timeTakenSeconds"`
	TimeTaken          string        `json:"timeTaken,omitempty"` // empty when no whole second elapsed
	AveragePerQuestion string        `json:"averagePerQuestion"`
	NewHighScore       bool          `json:"newHighScore"`
	PreviousHighScore  int           `json:"previousHighScore"`
	Rating             domain.Rating `json:"rating"`
	Emblem             domain.Emblem `json:"emblem"`
	RestartLabel       string        `json:"restartLabel"`
}

// Render dispatches on the snapshot's state.
func Render(snap app.Snapshot, questions domain.QuestionSet) View {
	switch st := snap.State.(type) {
	case app.InProgressState:
		return View{Screen: domain.ScreenInProgress, Quiz: quizView(st, snap, questions)}
	case app.ResultState:
		return View{Screen: domain.ScreenResult, Result: resultView(st)}
	default:
		return View{Screen: domain.ScreenStart, Start: &StartView{
			Title:         Title,
			QuestionCount: len(questions),
			StartLabel:    StartLabel,
		}}
	}
}

// Navigator colors each question by position and answer record.
func Navigator(current int, answered []bool) []Indicator {
	out := make([]Indicator, len(answered))
	for i := range answered {
		status := domain.IndicatorUnanswered
		switch {
		case i == current:
			status = domain.IndicatorCurrent
		case answered[i]:
			status = domain.IndicatorAnswered
		}
		out[i] = Indicator{Number: i + 1, Status: status}
	}
	return out
}

func quizView(st app.InProgressState, snap app.Snapshot, questions domain.QuestionSet) *QuizView {
	q := questions[st.Index]
	options := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		options[i] = OptionView{
			Label:    string(rune(firstOptionTag + i)),
			Text:     text,
			Selected: text == st.Selected,
		}
	}

	label := NextLabel
	if st.Index+1 == len(questions) {
		label = FinishLabel
	}

	elapsed := 0
	if !snap.Now.IsZero() {
		elapsed = app.ElapsedDisplaySeconds(st.StartedAt, snap.Now)
	}

	return &QuizView{
		Number:          st.Index + 1,
		Total:           len(questions),
		Prompt:          q.Prompt,
		Options:         options,
		CanAdvance:      st.Selected != "",
		AdvanceLabel:    label,
		ElapsedSeconds:  elapsed,
		Elapsed:         app.FormatClock(elapsed),
		ProgressPercent: app.ProgressPercent(st.Index, len(questions)),
		Navigator:       Navigator(st.Index, snap.Answered),
	}
}

func resultView(st app.ResultState) *ResultView {
	view := &ResultView{
		Score:              st.Score,
		Total:              st.Total,
		Percentage:         st.Percentage,
		Bonus:              st.Bonus,
		TotalScore:         st.TotalScore,
		TimeTakenSeconds:   st.TimeTakenSeconds,
		AveragePerQuestion: notApplicable,
		NewHighScore:       st.NewHighScore,
		PreviousHighScore:  st.PreviousHighScore,
		Rating:             app.RatingFor(st.Percentage),
		Emblem:             app.EmblemFor(st.Percentage),
		RestartLabel:       RestartLabel,
	}
	if st.TimeTakenSeconds > 0 {
		view.TimeTaken = app.FormatClock(st.TimeTakenSeconds)
		view.AveragePerQuestion = app.FormatClock(app.AverageSecondsPerQuestion(st.TimeTakenSeconds, st.Total))
	}
	return view
}
