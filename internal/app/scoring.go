package app

import (
	"fmt"
	"math"
	"time"

	"quiz-widget/internal/domain"
)

// TimeTakenSeconds floors the completed duration to whole seconds.
func TimeTakenSeconds(start, end time.Time) int {
	return wholeSeconds(end.Sub(start))
}

// ElapsedDisplaySeconds is the live timer value; it is never used for scoring.
func ElapsedDisplaySeconds(start, now time.Time) int {
	return wholeSeconds(now.Sub(start))
}

func wholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Bonus rewards correct answers inversely to the time taken.
// A zero duration yields no bonus.
func Bonus(correct, timeTakenSeconds int) int {
	if timeTakenSeconds <= 0 || correct <= 0 {
		return 0
	}
	return correct * 1000 / timeTakenSeconds
}

// TotalScore adds the time bonus to the number of correct answers.
func TotalScore(score, bonus int) int {
	return score + bonus
}

// Percentage is the rounded share of correct answers.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// ProgressPercent is how far through the quiz the current question is, counting it.
func ProgressPercent(index, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(index+1) / float64(total) * 100))
}

// AverageSecondsPerQuestion floors the time taken over the number of questions.
func AverageSecondsPerQuestion(timeTakenSeconds, total int) int {
	if total <= 0 {
		return 0
	}
	return timeTakenSeconds / total
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// RatingFor buckets an accuracy percentage.
func RatingFor(percentage int) domain.Rating {
	switch {
	case percentage >= 80:
		return domain.RatingExcellent
	case percentage >= 60:
		return domain.RatingGood
	case percentage >= 40:
		return domain.RatingFair
	default:
		return domain.RatingPoor
	}
}

// EmblemFor picks the badge for an accuracy percentage.
func EmblemFor(percentage int) domain.Emblem {
	switch {
	case percentage >= 90:
		return domain.EmblemTrophy
	case percentage >= 80:
		return domain.EmblemParty
	case percentage >= 70:
		return domain.EmblemClap
	case percentage >= 60:
		return domain.EmblemThumbs
	default:
		return domain.EmblemFlex
	}
}
