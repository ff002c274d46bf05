package entities

import "time"

// QuizContent is a generated quiz as returned by the quiz API.
// It is never mutated once a session wraps it.
type QuizContent struct {
	ID            *int64 // set only for quizzes loaded from history
	Title         string
	Summary       string
	URL           string
	Questions     []Question
	RelatedTopics []string
	CreatedAt     time.Time
}

// QuestionCount returns the number of questions in the quiz.
func (c *QuizContent) QuestionCount() int {
	return len(c.Questions)
}

// Clone returns a deep copy of the quiz content.
func (c *QuizContent) Clone() *QuizContent {
	out := *c
	if c.ID != nil {
		id := *c.ID
		out.ID = &id
	}
	if c.Questions != nil {
		out.Questions = make([]Question, len(c.Questions))
		for i, q := range c.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	if c.RelatedTopics != nil {
		out.RelatedTopics = append([]string(nil), c.RelatedTopics...)
	}
	return &out
}

// HistoryEntry is the summary of a stored quiz shown in the history list.
type HistoryEntry struct {
	ID            int64
	Title         string
	URL           string
	QuestionCount int
	CreatedAt     time.Time
}
