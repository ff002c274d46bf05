package workspace

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
)

var (
	ErrRequestPending = errors.New("request already in progress")
	ErrStaleResponse  = errors.New("response no longer targets this workspace")
	ErrStaleSession   = errors.New("quiz session is no longer active")
	ErrClosed         = errors.New("workspace closed")
)

// Tab is one of the two top-level views.
type Tab string

const (
	TabGenerate Tab = "generate"
	TabHistory  Tab = "history"
)

// Target selects which session of the workspace an action applies to.
type Target string

const (
	TargetPrimary Target = "p"
	TargetOverlay Target = "o"
)

// RequestKind identifies a gateway request that may be outstanding.
type RequestKind string

const (
	RequestGenerate RequestKind = "generate"
	RequestHistory  RequestKind = "history"
	RequestOpen     RequestKind = "open"
)

// Workspace is everything one chat sees: the active tab, the primary quiz,
// the history list and the history overlay. All methods are safe for
// concurrent use; state changes are applied one at a time.
type Workspace struct {
	mu sync.Mutex

	tab      Tab
	primary  *quiz.Session
	overlay  *quiz.Session
	seq      int64
	ticket   uuid.UUID // outstanding generation
	pending  map[RequestKind]bool
	closed   bool
	lastSeen time.Time

	history       []entities.HistoryEntry
	historyLoaded bool
}

// New creates an empty workspace on the generate tab.
func New(now time.Time) *Workspace {
	return &Workspace{
		tab:      TabGenerate,
		pending:  make(map[RequestKind]bool),
		lastSeen: now,
	}
}

// Touch records user activity.
func (w *Workspace) Touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = now
}

// LastSeen returns the time of the last user activity.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Close detaches the workspace. Responses that arrive afterwards are dropped.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// Tab returns the active top-level view.
func (w *Workspace) Tab() Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

// SetTab switches the active top-level view.
func (w *Workspace) SetTab(t Tab) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tab = t
}

// Pending reports whether a request of kind is outstanding.
func (w *Workspace) Pending(kind RequestKind) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[kind]
}

// BeginGeneration marks a generation as outstanding and returns its ticket.
// Only one generation may be outstanding at a time.
func (w *Workspace) BeginGeneration() (uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.begin(RequestGenerate); err != nil {
		return uuid.Nil, err
	}
	w.ticket = uuid.New()
	return w.ticket, nil
}

// CompleteGeneration replaces the primary session with a new one wrapping
// content, provided ticket is still the outstanding generation.
func (w *Workspace) CompleteGeneration(ticket uuid.UUID, content *entities.QuizContent) (quiz.View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || ticket != w.ticket {
		return quiz.View{}, ErrStaleResponse
	}
	w.finishGeneration()

	w.primary = w.newSession(content)
	return w.primary.View(), nil
}

// FailGeneration clears the outstanding generation. The primary session is untouched.
func (w *Workspace) FailGeneration(ticket uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ticket == w.ticket {
		w.finishGeneration()
	}
}

// BeginHistory marks a history listing as outstanding.
func (w *Workspace) BeginHistory() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.begin(RequestHistory)
}

// CompleteHistory stores the freshly listed history.
func (w *Workspace) CompleteHistory(entries []entities.HistoryEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.pending, RequestHistory)
	if w.closed {
		return ErrStaleResponse
	}
	if entries == nil {
		entries = []entities.HistoryEntry{}
	}
	w.history = entries
	w.historyLoaded = true
	return nil
}

// FailHistory clears the outstanding listing. The previous list is kept.
func (w *Workspace) FailHistory() {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, RequestHistory)
}

// History returns the last listed history. loaded is false until the
// first successful listing; an empty list is a valid loaded result.
func (w *Workspace) History() (entries []entities.HistoryEntry, loaded bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]entities.HistoryEntry(nil), w.history...), w.historyLoaded
}

// BeginOpen marks a history fetch as outstanding.
func (w *Workspace) BeginOpen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.begin(RequestOpen)
}

// CompleteOpen opens content in the overlay, discarding any previous overlay.
func (w *Workspace) CompleteOpen(content *entities.QuizContent) (quiz.View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.pending, RequestOpen)
	if w.closed {
		return quiz.View{}, ErrStaleResponse
	}

	w.overlay = w.newSession(content)
	return w.overlay.View(), nil
}

// FailOpen clears the outstanding history fetch.
func (w *Workspace) FailOpen() {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, RequestOpen)
}

// CloseOverlay discards the overlay session together with any attempt in it.
// seq must match the overlay being closed; zero closes whatever is open.
func (w *Workspace) CloseOverlay(seq int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.overlay == nil || (seq != 0 && w.overlay.Seq() != seq) {
		return false
	}
	w.overlay = nil
	return true
}

// Session returns the view of the target session.
func (w *Workspace) Session(target Target) (quiz.View, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.session(target)
	if s == nil {
		return quiz.View{}, false
	}
	return s.View(), true
}

// Apply runs action on the target session. seq must identify the session
// the user interacted with; presses on an older quiz yield ErrStaleSession.
// applied is false when the state machine refused the action.
func (w *Workspace) Apply(target Target, seq int64, action Action) (v quiz.View, applied bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.session(target)
	if s == nil || s.Seq() != seq {
		return quiz.View{}, false, ErrStaleSession
	}

	applied = action.apply(s)
	return s.View(), applied, nil
}

func (w *Workspace) session(target Target) *quiz.Session {
	switch target {
	case TargetPrimary:
		return w.primary
	case TargetOverlay:
		return w.overlay
	default:
		return nil
	}
}

func (w *Workspace) newSession(content *entities.QuizContent) *quiz.Session {
	w.seq++
	return quiz.NewSession(w.seq, content)
}

func (w *Workspace) begin(kind RequestKind) error {
	if w.closed {
		return ErrClosed
	}
	if w.pending[kind] {
		return ErrRequestPending
	}
	w.pending[kind] = true
	return nil
}

func (w *Workspace) finishGeneration() {
	delete(w.pending, RequestGenerate)
	w.ticket = uuid.Nil
}
