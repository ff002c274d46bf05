package entities

import "strings"

// Difficulty is the difficulty tag attached to a question by the quiz API.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Level returns the difficulty used for presentation.
// Unknown or missing values fall back to medium.
func (d Difficulty) Level() Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Label returns the tag as sent by the API, or the fallback level when empty.
func (d Difficulty) Label() string {
	if s := strings.TrimSpace(string(d)); s != "" {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(string(d.Level()))
}

// Question is a single multiple-choice question.
// Option letters are never stored, they are derived from the position in Options.
type Question struct {
	Text          string
	Options       []string
	CorrectAnswer string // option letter, e.g. "B"
	Explanation   string
	Difficulty    Difficulty
}

// OptionLetter returns the letter of the option at index i ("A" for 0).
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// OptionIndex is the inverse of OptionLetter. It returns -1 for anything
// that is not a single upper-case letter.
func OptionIndex(letter string) int {
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return -1
	}
	return int(letter[0] - 'A')
}

// HasOption reports whether letter addresses one of the question's options.
func (q Question) HasOption(letter string) bool {
	i := OptionIndex(letter)
	return i >= 0 && i < len(q.Options)
}

// CorrectIndex returns the index of the correct option, or -1 when
// CorrectAnswer does not resolve to any option.
func (q Question) CorrectIndex() int {
	if !q.HasOption(q.CorrectAnswer) {
		return -1
	}
	return OptionIndex(q.CorrectAnswer)
}

// IsCorrect reports whether letter is the correct answer.
// A question with an unresolvable correct answer has no correct option.
func (q Question) IsCorrect(letter string) bool {
	return q.CorrectIndex() >= 0 && letter == q.CorrectAnswer
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}
