package quiz

// State is the attempt state of a quiz session.
type State int

const (
	StateReview     State = iota // answer key visible, no input
	StateAttempting              // collecting answers, correctness hidden
	StateGraded                  // attempt submitted, correctness and score visible
)

func (s State) String() string {
	switch s {
	case StateReview:
		return "review"
	case StateAttempting:
		return "attempting"
	case StateGraded:
		return "graded"
	default:
		return "unknown"
	}
}

// Controller is the attempt state machine. It owns the ledger of the
// current attempt and clears it on every mode change.
//
//	Review <-> Attempting -> Graded -> Attempting
type Controller struct {
	state  State
	ledger *Ledger
}

// NewController creates a controller in review mode with an empty ledger.
func NewController() *Controller {
	return &Controller{
		state:  StateReview,
		ledger: NewLedger(),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Ledger returns the ledger of the current attempt.
func (c *Controller) Ledger() *Ledger {
	return c.ledger
}

// TakeQuiz enters attempt mode from Review or Graded with an empty ledger.
// It reports whether a transition happened.
func (c *Controller) TakeQuiz() bool {
	if c.state == StateAttempting {
		return false
	}
	c.enter(StateAttempting)
	return true
}

// ViewAnswers leaves attempt mode for Review, discarding the answers given so far.
// It reports whether a transition happened.
func (c *Controller) ViewAnswers() bool {
	if c.state != StateAttempting {
		return false
	}
	c.enter(StateReview)
	return true
}

// Toggle flips between review and attempt mode.
// From Graded it always goes back to Attempting, never to Review.
func (c *Controller) Toggle() {
	if c.state == StateAttempting {
		c.enter(StateReview)
		return
	}
	c.enter(StateAttempting)
}

// Record stores an answer while attempting. It is a no-op in any other state.
func (c *Controller) Record(position int, letter string) bool {
	if c.state != StateAttempting {
		return false
	}
	c.ledger.Record(position, letter)
	return true
}

// Submit grades the attempt once every one of total questions is answered.
// An incomplete or out-of-mode submission is refused without error.
func (c *Controller) Submit(total int) bool {
	if c.state != StateAttempting || c.ledger.Len() != total {
		return false
	}
	c.state = StateGraded
	return true
}

func (c *Controller) enter(s State) {
	c.ledger.Clear()
	c.state = s
}
