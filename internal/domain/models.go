package domain

import "fmt"

// Screen identifies which of the three quiz screens is showing.
type Screen string

const (
	ScreenStart      Screen = "start"
	ScreenInProgress Screen = "inProgress"
	ScreenResult     Screen = "result"
)

// Question models an MCQ question with exactly one correct option.
type Question struct {
	Prompt  string   `json:"question" yaml:"question"`
	Options []string `json:"options" yaml:"options"`
	Answer  string   `json:"answer" yaml:"answer"` // must be one of Options
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// IsCorrect compares the selection with the answer exactly; no trimming or case folding.
func (q Question) IsCorrect(option string) bool {
	return option != "" && option == q.Answer
}

// Validate checks the question invariants.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q needs at least two options", ErrInvalidQuestion, q.Prompt)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return fmt.Errorf("%w: %q has an empty option", ErrInvalidQuestion, q.Prompt)
		}
		if _, dup := seen[o]; dup {
			return fmt.Errorf("%w: %q repeats option %q", ErrInvalidQuestion, q.Prompt, o)
		}
		seen[o] = struct{}{}
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: answer %q of %q is not an option", ErrInvalidQuestion, q.Answer, q.Prompt)
	}
	return nil
}

// QuestionSet is the ordered, immutable sequence of questions for a session.
type QuestionSet []Question

// Validate checks every question and rejects an empty set.
func (s QuestionSet) Validate() error {
	if len(s) == 0 {
		return ErrEmptyQuestionSet
	}
	for i, q := range s {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a running session's questions.
func (s QuestionSet) Clone() QuestionSet {
	out := make(QuestionSet, len(s))
	for i, q := range s {
		out[i] = Question{
			Prompt:  q.Prompt,
			Options: append([]string(nil), q.Options...),
			Answer:  q.Answer,
		}
	}
	return out
}

// IndicatorStatus colors one cell of the question navigator.
type IndicatorStatus string

const (
	IndicatorCurrent    IndicatorStatus = "current"
	IndicatorAnswered   IndicatorStatus = "answered"
	IndicatorUnanswered IndicatorStatus = "unanswered"
)

// Rating is the accuracy band used to color the result screen.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
)

// Emblem is the badge shown next to the final accuracy.
type Emblem string

const (
	EmblemTrophy Emblem = "trophy"
	EmblemParty  Emblem = "party"
	EmblemClap   Emblem = "clap"
	EmblemThumbs Emblem = "thumbs"
	EmblemFlex   Emblem = "flex"
)
