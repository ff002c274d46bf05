// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and notice messages.
const (
	msgInvalidURL        = "Please send a full Wikipedia article link, for example https://en.wikipedia.org/wiki/Alan_Turing"
	msgGenerationPending = "⏳ A quiz is already being generated. Please wait for it to finish."
	msgHistoryPending    = "⏳ History is already loading."
	msgOpenPending       = "⏳ A quiz is already loading."
	msgQuizUnavailable   = "No quiz yet. Send a Wikipedia link to generate one."
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Use /generate, /history or /help."
	msgStaleQuiz         = "This quiz is no longer active."
	msgAnswerAllFirst    = "Answer every question before submitting (%d/%d)."
	msgAnswerInAttempt   = "Press \"Take quiz\" to start answering."
	msgLoadingQuiz       = "Loading quiz…"
	msgOverlayClosed     = "Closed."
	msgRequestPending    = "⏳ Please wait for the previous request to finish."
	msgHistoryEmpty      = "🗂 No quizzes yet. Send a Wikipedia link to generate the first one."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.DisableWebPagePreview = true
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Wiki Quiz Bot"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Send me a Wikipedia article link and I will turn it into a multiple-choice quiz."))
	sb.WriteString("\n\n")
	sb.WriteString(md("📖 Review the answer key with explanations\n"))
	sb.WriteString(md("✏️ Take the quiz yourself and get a score\n"))
	sb.WriteString(md("🗂 Browse quizzes generated earlier\n"))
	sb.WriteString("\n")
	sb.WriteString(md("Paste a link to get started."))

	return sb.String()
}

func helpMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	sb.WriteString(md("/generate - generate a quiz from a Wikipedia link\n"))
	sb.WriteString(md("/history - browse previously generated quizzes\n"))
	sb.WriteString(md("/quiz - show the current quiz again\n"))
	sb.WriteString(md("/start - start over\n"))
	sb.WriteString("\n")
	sb.WriteString(md("In a quiz, \"Take quiz\" hides the answers so you can try yourself. "))
	sb.WriteString(md("Submit once every question is answered to see your score."))

	return sb.String()
}

func generatePromptMessage() string {
	return md("🔗 Send a Wikipedia article link, for example\n") +
		md("https://en.wikipedia.org/wiki/Alan_Turing")
}

func generatingMessage(url string) string {
	return md("⏳ Generating a quiz for ") + md(url) + md("\nThis usually takes under a minute.")
}

func failureMessage(reason string) string {
	return md("⚠️ ") + bold(reason) + "\n\n" + md("Nothing was changed. You can try again.")
}

func answerAllFirst(answered, total int) string {
	return fmt.Sprintf(msgAnswerAllFirst, answered, total)
}
