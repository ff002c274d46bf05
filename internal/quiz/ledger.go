package quiz

import "maps"

// Ledger records the option chosen for each answered question position.
// Positions are 0-based; unanswered positions have no entry.
type Ledger struct {
	answers map[int]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{answers: make(map[int]string)}
}

// Record stores letter for position, replacing any previous answer.
func (l *Ledger) Record(position int, letter string) {
	l.answers[position] = letter
}

// Answer returns the letter recorded for position.
func (l *Ledger) Answer(position int) (string, bool) {
	letter, ok := l.answers[position]
	return letter, ok
}

// Len returns the number of answered positions.
func (l *Ledger) Len() int {
	return len(l.answers)
}

// Clear removes every recorded answer.
func (l *Ledger) Clear() {
	clear(l.answers)
}

// Snapshot returns a copy of the recorded answers.
func (l *Ledger) Snapshot() map[int]string {
	return maps.Clone(l.answers)
}
