package quiz

import (
	"time"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

// Mark is how an option is flagged when rendered.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// View is a read-only projection of a session used for rendering.
type View struct {
	Seq           int64
	QuizID        *int64 // set for quizzes opened from history
	Title         string
	Summary       string
	URL           string
	RelatedTopics []string
	CreatedAt     time.Time
	State         State
	Questions     []QuestionView
	Answered      int
	CanSubmit     bool
	Score         *Score // set only once graded
}

// QuestionView is the rendered state of one question.
type QuestionView struct {
	Number          int // 1-based
	Text            string
	Difficulty      entities.Difficulty
	Options         []OptionView
	Explanation     string
	ShowExplanation bool
}

// OptionView is the rendered state of one option.
type OptionView struct {
	Letter   string
	Text     string
	Selected bool
	Mark     Mark
}

// View projects the session for rendering.
//
// Review shows the answer key and explanations. Attempting shows only the
// user's selections. Graded shows the answer key, the wrong picks,
// explanations and the score.
func (s *Session) View() View {
	state := s.ctrl.State()
	ledger := s.ctrl.Ledger()
	c := s.content

	v := View{
		Seq:           s.seq,
		Title:         c.Title,
		Summary:       c.Summary,
		URL:           c.URL,
		RelatedTopics: append([]string(nil), c.RelatedTopics...),
		CreatedAt:     c.CreatedAt,
		State:         state,
		Questions:     make([]QuestionView, 0, len(c.Questions)),
		Answered:      ledger.Len(),
		CanSubmit:     s.CanSubmit(),
	}
	if c.ID != nil {
		id := *c.ID
		v.QuizID = &id
	}

	reveal := state != StateAttempting
	for i, q := range c.Questions {
		chosen, answered := ledger.Answer(i)
		qv := QuestionView{
			Number:          i + 1,
			Text:            q.Text,
			Difficulty:      q.Difficulty,
			Options:         make([]OptionView, len(q.Options)),
			Explanation:     q.Explanation,
			ShowExplanation: reveal,
		}
		for j, text := range q.Options {
			letter := entities.OptionLetter(j)
			ov := OptionView{
				Letter:   letter,
				Text:     text,
				Selected: answered && chosen == letter,
			}
			if reveal {
				switch {
				case q.IsCorrect(letter):
					ov.Mark = MarkCorrect
				case ov.Selected:
					ov.Mark = MarkIncorrect
				}
			}
			qv.Options[j] = ov
		}
		v.Questions = append(v.Questions, qv)
	}

	if state == StateGraded {
		score := ComputeScore(c, ledger)
		v.Score = &score
	}

	return v
}
