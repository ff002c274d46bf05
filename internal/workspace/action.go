package workspace

import "github.com/aliskhannn/wiki-quiz-bot/internal/quiz"

// ActionKind is a user interaction with a quiz session.
type ActionKind string

const (
	ActionToggle      ActionKind = "toggle"
	ActionTakeQuiz    ActionKind = "take"
	ActionViewAnswers ActionKind = "review"
	ActionAnswer      ActionKind = "answer"
	ActionSubmit      ActionKind = "submit"
)

// Action is one interaction. Position and Letter are used by ActionAnswer only.
type Action struct {
	Kind     ActionKind
	Position int
	Letter   string
}

func (a Action) apply(s *quiz.Session) bool {
	switch a.Kind {
	case ActionToggle:
		s.Toggle()
		return true
	case ActionTakeQuiz:
		return s.TakeQuiz()
	case ActionViewAnswers:
		return s.ViewAnswers()
	case ActionAnswer:
		return s.SelectAnswer(a.Position, a.Letter)
	case ActionSubmit:
		return s.Submit()
	default:
		return false
	}
}
