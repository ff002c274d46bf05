package quiz

import (
	"testing"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

func newContent(correct ...string) *entities.QuizContent {
	c := &entities.QuizContent{
		Title:   "Go (programming language)",
		Summary: "Go is a statically typed, compiled language.",
		URL:     "https://en.wikipedia.org/wiki/Go_(programming_language)",
	}
	for _, letter := range correct {
		c.Questions = append(c.Questions, entities.Question{
			Text:          "Question?",
			Options:       []string{"one", "two", "three", "four"},
			CorrectAnswer: letter,
			Explanation:   "Because.",
			Difficulty:    entities.DifficultyEasy,
		})
	}
	return c
}

func TestControllerInitialState(t *testing.T) {
	c := NewController()
	if c.State() != StateReview {
		t.Fatalf("state = %v, want review", c.State())
	}
	if c.Ledger().Len() != 0 {
		t.Fatalf("ledger not empty")
	}
}

func TestControllerTransitionsClearLedger(t *testing.T) {
	c := NewController()

	if !c.TakeQuiz() {
		t.Fatal("review -> attempting refused")
	}
	c.Record(0, "A")
	c.Record(1, "B")

	if !c.ViewAnswers() {
		t.Fatal("attempting -> review refused")
	}
	if c.Ledger().Len() != 0 {
		t.Fatalf("ledger len after attempting -> review = %d", c.Ledger().Len())
	}

	c.TakeQuiz()
	if c.Ledger().Len() != 0 {
		t.Fatalf("ledger len after review -> attempting = %d", c.Ledger().Len())
	}
	c.Record(0, "A")
	c.Record(1, "C")
	if !c.Submit(2) {
		t.Fatal("complete submission refused")
	}
	if c.State() != StateGraded {
		t.Fatalf("state = %v, want graded", c.State())
	}

	if !c.TakeQuiz() {
		t.Fatal("graded -> attempting refused")
	}
	if c.State() != StateAttempting {
		t.Fatalf("state = %v, want attempting", c.State())
	}
	if c.Ledger().Len() != 0 {
		t.Fatalf("ledger len after graded -> attempting = %d", c.Ledger().Len())
	}
}

func TestControllerToggle(t *testing.T) {
	c := NewController()

	c.Toggle()
	if c.State() != StateAttempting {
		t.Fatalf("toggle from review = %v", c.State())
	}
	c.Record(0, "A")
	c.Toggle()
	if c.State() != StateReview || c.Ledger().Len() != 0 {
		t.Fatalf("toggle from attempting = %v, ledger %d", c.State(), c.Ledger().Len())
	}

	c.Toggle()
	c.Record(0, "A")
	c.Submit(1)
	c.Toggle()
	if c.State() != StateAttempting || c.Ledger().Len() != 0 {
		t.Fatalf("toggle from graded = %v, ledger %d", c.State(), c.Ledger().Len())
	}
}

func TestControllerGradedOnlyFromAttempting(t *testing.T) {
	c := NewController()
	if c.Submit(0) {
		t.Fatal("submit accepted in review")
	}
	if c.State() != StateReview {
		t.Fatalf("state = %v", c.State())
	}
	if c.ViewAnswers() {
		t.Fatal("view answers accepted outside attempt mode")
	}
}

func TestControllerRecordOutsideAttempt(t *testing.T) {
	c := NewController()
	if c.Record(0, "A") {
		t.Fatal("record accepted in review")
	}

	c.TakeQuiz()
	c.Record(0, "A")
	c.Submit(1)
	if c.Record(0, "B") {
		t.Fatal("record accepted once graded")
	}
	if got, _ := c.Ledger().Answer(0); got != "A" {
		t.Fatalf("answer after graded record = %q", got)
	}
}

func TestSubmitGuard(t *testing.T) {
	s := NewSession(1, newContent("A", "B", "C"))
	s.TakeQuiz()

	s.SelectAnswer(0, "A")
	s.SelectAnswer(1, "B")
	if s.CanSubmit() || s.Submit() {
		t.Fatal("submission accepted with 2 of 3 answers")
	}
	if s.State() != StateAttempting {
		t.Fatalf("state = %v after refused submit", s.State())
	}

	s.SelectAnswer(2, "D")
	if !s.CanSubmit() || !s.Submit() {
		t.Fatal("submission refused with every answer given")
	}
}

func TestSelectAnswerLastWriteWins(t *testing.T) {
	s := NewSession(1, newContent("A", "B"))
	s.TakeQuiz()

	s.SelectAnswer(0, "B")
	s.SelectAnswer(0, "B")
	if got := s.Answers(); len(got) != 1 || got[0] != "B" {
		t.Fatalf("answers = %v", got)
	}

	s.SelectAnswer(0, "C")
	if got := s.Answers(); len(got) != 1 || got[0] != "C" {
		t.Fatalf("answers after overwrite = %v", got)
	}
}

func TestSelectAnswerIgnoresUnknownPositionsAndLetters(t *testing.T) {
	s := NewSession(1, newContent("A"))
	s.TakeQuiz()

	for _, tc := range []struct {
		pos    int
		letter string
	}{
		{-1, "A"},
		{1, "A"},
		{0, "E"},
		{0, "a"},
		{0, ""},
	} {
		if s.SelectAnswer(tc.pos, tc.letter) {
			t.Errorf("SelectAnswer(%d, %q) accepted", tc.pos, tc.letter)
		}
	}
	if len(s.Answers()) != 0 {
		t.Fatalf("answers = %v", s.Answers())
	}
}

func TestComputeScore(t *testing.T) {
	content := newContent("A", "B", "C")

	tests := []struct {
		name    string
		answers map[int]string
		correct int
	}{
		{"empty ledger", nil, 0},
		{"partial", map[int]string{1: "B"}, 1},
		{"mixed", map[int]string{0: "A", 1: "C", 2: "C"}, 2},
		{"all correct", map[int]string{0: "A", 1: "B", 2: "C"}, 3},
		{"all wrong", map[int]string{0: "D", 1: "D", 2: "D"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			for pos, letter := range tt.answers {
				l.Record(pos, letter)
			}

			got := ComputeScore(content, l)
			if got.Total != 3 {
				t.Errorf("total = %d, want 3", got.Total)
			}
			if got.Correct != tt.correct {
				t.Errorf("correct = %d, want %d", got.Correct, tt.correct)
			}
			if got.Correct > got.Total {
				t.Errorf("correct %d exceeds total %d", got.Correct, got.Total)
			}
		})
	}
}

func TestScenarioTwoOfThree(t *testing.T) {
	s := NewSession(1, newContent("A", "B", "C"))
	s.TakeQuiz()
	s.SelectAnswer(0, "A")
	s.SelectAnswer(1, "C")
	s.SelectAnswer(2, "C")

	if !s.Submit() {
		t.Fatal("submit refused")
	}

	score := s.Score()
	if score != (Score{Correct: 2, Total: 3}) {
		t.Fatalf("score = %+v", score)
	}
	if pct, ok := score.Percentage(); !ok || pct != 67 {
		t.Fatalf("percentage = %d, %v; want 67", pct, ok)
	}
}

func TestScenarioNoQuestions(t *testing.T) {
	s := NewSession(1, newContent())
	s.TakeQuiz()

	if !s.Submit() {
		t.Fatal("submit refused for a quiz without questions")
	}

	score := s.Score()
	if score != (Score{}) {
		t.Fatalf("score = %+v", score)
	}
	if pct, ok := score.Percentage(); ok || pct != 0 {
		t.Fatalf("percentage = %d, %v; want 0, false", pct, ok)
	}

	v := s.View()
	if v.Score == nil || v.Score.Total != 0 {
		t.Fatalf("view score = %+v", v.Score)
	}
}

func TestUnresolvableCorrectAnswer(t *testing.T) {
	content := newContent("Z")
	s := NewSession(1, content)

	for _, o := range s.View().Questions[0].Options {
		if o.Mark == MarkCorrect {
			t.Fatalf("option %s marked correct", o.Letter)
		}
	}

	s.TakeQuiz()
	s.SelectAnswer(0, "A")
	s.Submit()
	if got := s.Score(); got.Correct != 0 || got.Total != 1 {
		t.Fatalf("score = %+v", got)
	}
}

func TestViewByState(t *testing.T) {
	s := NewSession(7, newContent("B", "C"))

	v := s.View()
	if v.Seq != 7 || v.State != StateReview || v.Score != nil {
		t.Fatalf("review view = %+v", v)
	}
	q := v.Questions[0]
	if !q.ShowExplanation || q.Options[1].Mark != MarkCorrect || q.Options[0].Mark != MarkNone {
		t.Fatalf("review question = %+v", q)
	}

	s.TakeQuiz()
	s.SelectAnswer(0, "A")
	v = s.View()
	q = v.Questions[0]
	if q.ShowExplanation {
		t.Fatal("explanation shown while attempting")
	}
	for _, o := range q.Options {
		if o.Mark != MarkNone {
			t.Fatalf("option %s marked while attempting", o.Letter)
		}
	}
	if !q.Options[0].Selected || v.Answered != 1 || v.CanSubmit {
		t.Fatalf("attempting view = %+v", v)
	}

	s.SelectAnswer(1, "C")
	s.Submit()
	v = s.View()
	q = v.Questions[0]
	if q.Options[0].Mark != MarkIncorrect || q.Options[1].Mark != MarkCorrect || !q.ShowExplanation {
		t.Fatalf("graded question = %+v", q)
	}
	if v.Score == nil || *v.Score != (Score{Correct: 1, Total: 2}) {
		t.Fatalf("graded score = %+v", v.Score)
	}
}

func TestSessionCopiesContent(t *testing.T) {
	content := newContent("A")
	s := NewSession(1, content)

	content.Questions[0].Options[0] = "changed"
	content.Questions[0].CorrectAnswer = "B"

	q := s.View().Questions[0]
	if q.Options[0].Text != "one" || q.Options[0].Mark != MarkCorrect {
		t.Fatalf("session content changed through caller: %+v", q.Options[0])
	}

	got := s.Content()
	got.Questions[0].Options[0] = "changed again"
	if s.View().Questions[0].Options[0].Text != "one" {
		t.Fatal("session content changed through Content()")
	}
}
