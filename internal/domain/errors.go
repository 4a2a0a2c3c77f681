package domain

import "errors"

var (
	// ErrInvalidTransition is returned when an intent is not legal on the current screen.
	ErrInvalidTransition = errors.New("intent not allowed on current screen")
	// ErrNoSelection is returned when advancing without a selected option.
	ErrNoSelection = errors.New("no option selected")
	// ErrUnknownOption indicates the selected text is not an option of the current question.
	ErrUnknownOption = errors.New("option not found")
	// ErrEmptyQuestionSet indicates a session was built without questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrInvalidQuestion indicates a question breaks its invariants.
	ErrInvalidQuestion = errors.New("invalid question")
)
