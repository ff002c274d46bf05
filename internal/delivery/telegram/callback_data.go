package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// Callback action constants.
const (
	actionTab     = "tab"
	actionQuiz    = "quiz"
	actionHistory = "hist"
	actionDismiss = "dismiss"
)

// History sub-actions.
const (
	historyOpen    = "open"
	historyClose   = "close"
	historyRefresh = "refresh"
	historyPage    = "page"
)

// quizNavigate is the quiz callback kind that only turns the page.
const quizNavigate = "page"

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
	}
}

// quizCallback is a decoded press on a quiz keyboard. Page is the page
// the press came from, or the page to show when Navigate is set.
type quizCallback struct {
	Target   workspace.Target
	Seq      int64
	Page     int
	Navigate bool
	Action   workspace.Action
}

// buildTabCallback builds callback data for switching between views.
func buildTabCallback(tab workspace.Tab) string {
	return callbackData{
		Action: actionTab,
		Params: []string{string(tab)},
	}.encode()
}

// buildQuizCallback builds callback data for an action on a quiz session
// pressed on page p. Answers carry the 0-based question position and the
// option letter.
func buildQuizCallback(target workspace.Target, seq int64, p int, action workspace.Action) string {
	params := []string{
		string(target),
		strconv.FormatInt(seq, 10),
		strconv.Itoa(p),
		string(action.Kind),
	}
	if action.Kind == workspace.ActionAnswer {
		params = append(params, strconv.Itoa(action.Position), action.Letter)
	}

	return callbackData{
		Action: actionQuiz,
		Params: params,
	}.encode()
}

// buildQuizPageCallback builds callback data for showing page p of a quiz session.
func buildQuizPageCallback(target workspace.Target, seq int64, p int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{string(target), strconv.FormatInt(seq, 10), strconv.Itoa(p), quizNavigate},
	}.encode()
}

func buildHistoryOpenCallback(quizID int64) string {
	return callbackData{
		Action: actionHistory,
		Params: []string{historyOpen, strconv.FormatInt(quizID, 10)},
	}.encode()
}

func buildHistoryCloseCallback(seq int64) string {
	return callbackData{
		Action: actionHistory,
		Params: []string{historyClose, strconv.FormatInt(seq, 10)},
	}.encode()
}

func buildHistoryPageCallback(p int) string {
	return callbackData{
		Action: actionHistory,
		Params: []string{historyPage, strconv.Itoa(p)},
	}.encode()
}

func buildHistoryRefreshCallback() string {
	return callbackData{
		Action: actionHistory,
		Params: []string{historyRefresh},
	}.encode()
}

// buildDismissCallback builds callback data for dismissing an error notice.
func buildDismissCallback() string {
	return actionDismiss
}

// parseQuizCallback decodes the params of a quiz callback.
func parseQuizCallback(params []string) (quizCallback, error) {
	if len(params) < 4 {
		return quizCallback{}, errBadCallback
	}

	target := workspace.Target(params[0])
	if target != workspace.TargetPrimary && target != workspace.TargetOverlay {
		return quizCallback{}, errBadCallback
	}

	seq, err := strconv.ParseInt(params[1], 10, 64)
	if err != nil || seq <= 0 {
		return quizCallback{}, errBadCallback
	}

	p, err := strconv.Atoi(params[2])
	if err != nil || p < 0 {
		return quizCallback{}, errBadCallback
	}

	qc := quizCallback{Target: target, Seq: seq, Page: p}
	if params[3] == quizNavigate {
		if len(params) != 4 {
			return quizCallback{}, errBadCallback
		}
		qc.Navigate = true
		return qc, nil
	}

	action := workspace.Action{Kind: workspace.ActionKind(params[3])}
	switch action.Kind {
	case workspace.ActionToggle, workspace.ActionTakeQuiz, workspace.ActionViewAnswers, workspace.ActionSubmit:
		if len(params) != 4 {
			return quizCallback{}, errBadCallback
		}
	case workspace.ActionAnswer:
		if len(params) != 6 {
			return quizCallback{}, errBadCallback
		}
		pos, err := strconv.Atoi(params[4])
		if err != nil || pos < 0 {
			return quizCallback{}, errBadCallback
		}
		action.Position = pos
		action.Letter = params[5]
	default:
		return quizCallback{}, errBadCallback
	}

	qc.Action = action
	return qc, nil
}

// parseIDParam parses the numeric parameter at index i.
func parseIDParam(params []string, i int) (int64, error) {
	if len(params) <= i {
		return 0, errBadCallback
	}
	id, err := strconv.ParseInt(params[i], 10, 64)
	if err != nil {
		return 0, errBadCallback
	}
	return id, nil
}
