package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// buildTabKeyboard builds the keyboard for switching between views.
func buildTabKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔗 Generate quiz", buildTabCallback(workspace.TabGenerate)),
			tgbotapi.NewInlineKeyboardButtonData("🗂 Past quizzes", buildTabCallback(workspace.TabHistory)),
		),
	)
}

// buildPageRow builds pagination buttons, or nil when there is a single page.
func buildPageRow(index, total int, data func(p int) string) []tgbotapi.InlineKeyboardButton {
	if total <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if index > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", data(index-1)))
	}
	if index < total-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", data(index+1)))
	}
	return row
}

// buildQuizKeyboard builds the keyboard of page index of a quiz session.
// Answer buttons are shown for the questions on that page only.
func buildQuizKeyboard(target workspace.Target, v quiz.View, pages []page, index int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	pg := pages[index]

	switch v.State {
	case quiz.StateReview:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Take quiz",
				buildQuizCallback(target, v.Seq, index, workspace.Action{Kind: workspace.ActionToggle})),
		))

	case quiz.StateAttempting:
		for _, q := range v.Questions[pg.From:pg.To] {
			rows = append(rows, buildAnswerRow(target, v.Seq, index, q))
		}
		submit := fmt.Sprintf("📤 Submit (%d/%d)", v.Answered, len(v.Questions))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(submit,
				buildQuizCallback(target, v.Seq, index, workspace.Action{Kind: workspace.ActionSubmit})),
			tgbotapi.NewInlineKeyboardButtonData("📖 View answers",
				buildQuizCallback(target, v.Seq, index, workspace.Action{Kind: workspace.ActionViewAnswers})),
		))

	case quiz.StateGraded:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Retake",
				buildQuizCallback(target, v.Seq, index, workspace.Action{Kind: workspace.ActionTakeQuiz})),
		))
	}

	nav := buildPageRow(index, len(pages), func(p int) string {
		return buildQuizPageCallback(target, v.Seq, p)
	})
	if nav != nil {
		rows = append(rows, nav)
	}

	if v.URL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Open article", v.URL),
		))
	}

	if target == workspace.TargetOverlay {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Close", buildHistoryCloseCallback(v.Seq)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerRow builds one row of option buttons for a question.
// The selected option is marked.
func buildAnswerRow(target workspace.Target, seq int64, p int, q quiz.QuestionView) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, o := range q.Options {
		label := fmt.Sprintf("%d%s", q.Number, o.Letter)
		if o.Selected {
			label = "• " + label + " •"
		}
		action := workspace.Action{
			Kind:     workspace.ActionAnswer,
			Position: q.Number - 1,
			Letter:   o.Letter,
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildQuizCallback(target, seq, p, action)))
	}
	return row
}

// buildHistoryKeyboard builds one button per stored quiz on page index.
func buildHistoryKeyboard(entries []entities.HistoryEntry, pages []page, index int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	pg := pages[index]
	for i := pg.From; i < pg.To; i++ {
		e := entries[i]
		label := fmt.Sprintf("%d. %s", i+1, clip(e.Title, 48))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildHistoryOpenCallback(e.ID)),
		))
	}

	if nav := buildPageRow(index, len(pages), buildHistoryPageCallback); nav != nil {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildHistoryRefreshCallback()),
		tgbotapi.NewInlineKeyboardButtonData("🔗 Generate quiz", buildTabCallback(workspace.TabGenerate)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDismissKeyboard builds the keyboard of an error notice.
func buildDismissKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Dismiss", buildDismissCallback()),
		),
	)
}
