package quiz

import (
	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

// Session wraps one quiz with its own attempt state and ledger.
// Sessions share nothing: opening another quiz means creating another Session.
type Session struct {
	seq     int64
	content *entities.QuizContent
	ctrl    *Controller
}

// NewSession creates a session in review mode. The content is copied so
// later changes by the caller cannot reorder options under the ledger.
// seq identifies the session among the ones created for the same chat.
func NewSession(seq int64, content *entities.QuizContent) *Session {
	return &Session{
		seq:     seq,
		content: content.Clone(),
		ctrl:    NewController(),
	}
}

// Seq returns the session sequence number.
func (s *Session) Seq() int64 {
	return s.seq
}

// Content returns a copy of the wrapped quiz.
func (s *Session) Content() *entities.QuizContent {
	return s.content.Clone()
}

// State returns the attempt state.
func (s *Session) State() State {
	return s.ctrl.State()
}

// Answers returns a copy of the current ledger.
func (s *Session) Answers() map[int]string {
	return s.ctrl.Ledger().Snapshot()
}

// TakeQuiz switches to attempt mode, see Controller.TakeQuiz.
func (s *Session) TakeQuiz() bool {
	return s.ctrl.TakeQuiz()
}

// ViewAnswers switches back to review mode, see Controller.ViewAnswers.
func (s *Session) ViewAnswers() bool {
	return s.ctrl.ViewAnswers()
}

// Toggle flips the review/attempt mode, see Controller.Toggle.
func (s *Session) Toggle() {
	s.ctrl.Toggle()
}

// SelectAnswer records letter for the question at position.
// Unknown positions and letters outside the question's options are ignored.
func (s *Session) SelectAnswer(position int, letter string) bool {
	if position < 0 || position >= s.content.QuestionCount() {
		return false
	}
	if !s.content.Questions[position].HasOption(letter) {
		return false
	}
	return s.ctrl.Record(position, letter)
}

// Submit grades the attempt if every question has been answered.
func (s *Session) Submit() bool {
	return s.ctrl.Submit(s.content.QuestionCount())
}

// CanSubmit reports whether Submit would be accepted right now.
func (s *Session) CanSubmit() bool {
	return s.ctrl.State() == StateAttempting && s.ctrl.Ledger().Len() == s.content.QuestionCount()
}

// Score grades the current ledger against the quiz.
func (s *Session) Score() Score {
	return ComputeScore(s.content, s.ctrl.Ledger())
}
