package quiz

import (
	"math"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

// Score is the result of grading one attempt.
type Score struct {
	Correct int
	Total   int
}

// ComputeScore counts the positions whose recorded answer matches the
// question's correct answer. Unanswered positions count as incorrect.
func ComputeScore(content *entities.QuizContent, ledger *Ledger) Score {
	score := Score{Total: content.QuestionCount()}
	for i, q := range content.Questions {
		if letter, ok := ledger.Answer(i); ok && q.IsCorrect(letter) {
			score.Correct++
		}
	}
	return score
}

// Percentage returns round(100 * Correct / Total).
// The second value is false when the quiz has no questions.
func (s Score) Percentage() (int, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return int(math.Round(100 * float64(s.Correct) / float64(s.Total))), true
}
