package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
)

// Field caps keep a single question well inside one message.
const (
	maxTitleLen       = 200
	maxSummaryLen     = 1000
	maxQuestionLen    = 500
	maxOptionLen      = 250
	maxExplanationLen = 700
)

// renderQuizPages renders a quiz session as one or more MarkdownV2 pages.
// Every question appears on exactly one page.
func renderQuizPages(v quiz.View) []page {
	blocks := make([]string, 0, len(v.Questions))
	for _, q := range v.Questions {
		blocks = append(blocks, renderQuestion(q, v.State))
	}

	var footer strings.Builder
	if len(v.Questions) == 0 {
		footer.WriteString(italic("This quiz has no questions."))
		footer.WriteString("\n")
	}
	if len(v.RelatedTopics) > 0 {
		footer.WriteString(md("🔎 Related topics: " + strings.Join(v.RelatedTopics, ", ")))
		footer.WriteString("\n")
	}

	header := func(i int) string {
		if i == 0 {
			return renderQuizHeader(v)
		}
		return bold("📚 "+quizTitle(v)) + "\n" + stateLine(v) + "\n\n"
	}

	return paginate(header, blocks, footer.String(), questionsPerPage)
}

func quizTitle(v quiz.View) string {
	if v.Title == "" {
		return "Untitled quiz"
	}
	return clip(v.Title, maxTitleLen)
}

func renderQuizHeader(v quiz.View) string {
	var sb strings.Builder

	sb.WriteString(bold("📚 " + quizTitle(v)))
	sb.WriteString("\n")

	var meta []string
	if v.QuizID != nil {
		meta = append(meta, fmt.Sprintf("Quiz #%d", *v.QuizID))
	}
	if !v.CreatedAt.IsZero() {
		meta = append(meta, "generated "+v.CreatedAt.Format("2006-01-02"))
	}
	if len(meta) > 0 {
		sb.WriteString(italic(strings.Join(meta, " · ")))
		sb.WriteString("\n")
	}

	if v.URL != "" {
		sb.WriteString(link("Read the article", v.URL))
		sb.WriteString("\n")
	}
	if v.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(clip(v.Summary, maxSummaryLen)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(stateLine(v))
	sb.WriteString("\n\n")

	return sb.String()
}

// stateLine renders the mode hint, the attempt progress or the score banner.
func stateLine(v quiz.View) string {
	switch v.State {
	case quiz.StateReview:
		return md("📖 Answer key. Press \"Take quiz\" to try it yourself.")
	case quiz.StateAttempting:
		return md(fmt.Sprintf("✏️ Your attempt: %d/%d answered.", v.Answered, len(v.Questions)))
	case quiz.StateGraded:
		return renderScore(v.Score)
	default:
		return ""
	}
}

// renderScore renders the score banner of a graded attempt.
func renderScore(s *quiz.Score) string {
	if s == nil {
		return ""
	}

	pct, ok := s.Percentage()
	if !ok {
		return bold(fmt.Sprintf("🏁 Score: %d/%d (N/A)", s.Correct, s.Total))
	}
	return bold(fmt.Sprintf("🏁 Score: %d/%d (%d%%)", s.Correct, s.Total, pct))
}

func renderQuestion(q quiz.QuestionView, state quiz.State) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%d. %s", q.Number, clip(q.Text, maxQuestionLen))))
	sb.WriteString(" ")
	sb.WriteString(md("[" + difficultyBadge(q.Difficulty) + "]"))
	sb.WriteString("\n")

	for _, o := range q.Options {
		sb.WriteString(md(fmt.Sprintf("%s %s. %s", optionIcon(o, state), o.Letter, clip(o.Text, maxOptionLen))))
		if state == quiz.StateGraded && o.Selected {
			sb.WriteString(" ")
			sb.WriteString(italic("(your answer)"))
		}
		sb.WriteString("\n")
	}

	if q.ShowExplanation && q.Explanation != "" {
		sb.WriteString(md("💡 "))
		sb.WriteString(italic(clip(q.Explanation, maxExplanationLen)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func optionIcon(o quiz.OptionView, state quiz.State) string {
	if state == quiz.StateAttempting {
		if o.Selected {
			return "🔘"
		}
		return "⚪️"
	}

	switch o.Mark {
	case quiz.MarkCorrect:
		return "✅"
	case quiz.MarkIncorrect:
		return "❌"
	default:
		return "▫️"
	}
}

func difficultyBadge(d entities.Difficulty) string {
	switch d.Level() {
	case entities.DifficultyEasy:
		return "🟢 " + d.Label()
	case entities.DifficultyHard:
		return "🔴 " + d.Label()
	default:
		return "🟡 " + d.Label()
	}
}

// renderHistoryPages renders the list of stored quizzes. Entries are
// numbered across pages in the order the quiz service returned them.
func renderHistoryPages(entries []entities.HistoryEntry) []page {
	if len(entries) == 0 {
		return []page{{Text: md(msgHistoryEmpty)}}
	}

	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		var sb strings.Builder
		sb.WriteString(md(fmt.Sprintf("%d. ", i+1)))
		sb.WriteString(bold(clip(e.Title, maxTitleLen)))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("   %d questions", e.QuestionCount)))
		if !e.CreatedAt.IsZero() {
			sb.WriteString(md(" · " + e.CreatedAt.Format("2006-01-02 15:04")))
		}
		if e.URL != "" {
			sb.WriteString(md(" · "))
			sb.WriteString(link("article", e.URL))
		}
		sb.WriteString("\n")
		blocks = append(blocks, sb.String())
	}

	header := func(int) string {
		return bold(fmt.Sprintf("🗂 Past quizzes (%d)", len(entries))) + "\n\n"
	}
	footer := "\n" + md("Pick a quiz below to open it.")

	return paginate(header, blocks, footer, entriesPerPage)
}

// link renders an inline MarkdownV2 link.
func link(text, url string) string {
	r := strings.NewReplacer(`\`, `\\`, `)`, `\)`)
	return "[" + md(text) + "](" + r.Replace(url) + ")"
}
