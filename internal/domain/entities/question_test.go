package entities

import "testing"

func TestOptionLetters(t *testing.T) {
	for i, want := range []string{"A", "B", "C", "D"} {
		if got := OptionLetter(i); got != want {
			t.Errorf("OptionLetter(%d) = %q, want %q", i, got, want)
		}
		if got := OptionIndex(want); got != i {
			t.Errorf("OptionIndex(%q) = %d, want %d", want, got, i)
		}
	}

	for _, bad := range []string{"", "a", "AB", "1", "?"} {
		if got := OptionIndex(bad); got != -1 {
			t.Errorf("OptionIndex(%q) = %d, want -1", bad, got)
		}
	}
}

func TestDifficultyFallback(t *testing.T) {
	tests := []struct {
		in        Difficulty
		wantLevel Difficulty
		wantLabel string
	}{
		{"easy", DifficultyEasy, "EASY"},
		{"Hard", DifficultyHard, "HARD"},
		{"medium", DifficultyMedium, "MEDIUM"},
		{"legendary", DifficultyMedium, "LEGENDARY"},
		{"", DifficultyMedium, "MEDIUM"},
	}

	for _, tt := range tests {
		if got := tt.in.Level(); got != tt.wantLevel {
			t.Errorf("%q.Level() = %q, want %q", tt.in, got, tt.wantLevel)
		}
		if got := tt.in.Label(); got != tt.wantLabel {
			t.Errorf("%q.Label() = %q, want %q", tt.in, got, tt.wantLabel)
		}
	}
}

func TestQuestionCorrectness(t *testing.T) {
	q := Question{Options: []string{"x", "y", "z"}, CorrectAnswer: "C"}
	if q.CorrectIndex() != 2 || !q.IsCorrect("C") || q.IsCorrect("A") {
		t.Fatalf("unexpected correctness for %+v", q)
	}

	q.CorrectAnswer = "D"
	if q.CorrectIndex() != -1 {
		t.Fatalf("CorrectIndex() = %d for out of range answer", q.CorrectIndex())
	}
	for i := range q.Options {
		if q.IsCorrect(OptionLetter(i)) {
			t.Fatalf("option %s reported correct", OptionLetter(i))
		}
	}
}

func TestQuizContentClone(t *testing.T) {
	id := int64(3)
	c := &QuizContent{
		ID:            &id,
		Questions:     []Question{{Options: []string{"a", "b"}, CorrectAnswer: "A"}},
		RelatedTopics: []string{"Go"},
	}

	cp := c.Clone()
	*cp.ID = 9
	cp.Questions[0].Options[0] = "changed"
	cp.RelatedTopics[0] = "Rust"

	if *c.ID != 3 || c.Questions[0].Options[0] != "a" || c.RelatedTopics[0] != "Go" {
		t.Fatalf("clone shares state with original: %+v", c)
	}
}
