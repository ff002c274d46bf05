package quizapi

import (
	"strings"
	"time"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

type generateRequest struct {
	URL string `json:"url"`
}

type questionDTO struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

type quizDTO struct {
	ID             int64         `json:"id"`
	URL            string        `json:"url"`
	ArticleTitle   string        `json:"article_title"`
	ArticleSummary string        `json:"article_summary"`
	Questions      []questionDTO `json:"questions"`
	RelatedTopics  []string      `json:"related_topics"`
	CreatedAt      string        `json:"created_at"`
}

type historyItemDTO struct {
	ID            int64  `json:"id"`
	URL           string `json:"url"`
	ArticleTitle  string `json:"article_title"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     string `json:"created_at"`
}

type errorDTO struct {
	Detail any `json:"detail"`
}

// toContent maps the wire quiz into domain content.
// withID is false for fresh generations, which are not yet part of history.
func (d quizDTO) toContent(withID bool) *entities.QuizContent {
	c := &entities.QuizContent{
		Title:         d.ArticleTitle,
		Summary:       d.ArticleSummary,
		URL:           d.URL,
		Questions:     make([]entities.Question, 0, len(d.Questions)),
		RelatedTopics: d.RelatedTopics,
		CreatedAt:     parseTime(d.CreatedAt),
	}
	if withID {
		id := d.ID
		c.ID = &id
	}

	for _, q := range d.Questions {
		c.Questions = append(c.Questions, entities.Question{
			Text:          q.Question,
			Options:       q.Options,
			CorrectAnswer: strings.ToUpper(strings.TrimSpace(q.CorrectAnswer)),
			Explanation:   q.Explanation,
			Difficulty:    entities.Difficulty(q.Difficulty),
		})
	}

	return c
}

func (d historyItemDTO) toEntry() entities.HistoryEntry {
	return entities.HistoryEntry{
		ID:            d.ID,
		Title:         d.ArticleTitle,
		URL:           d.URL,
		QuestionCount: d.QuestionCount,
		CreatedAt:     parseTime(d.CreatedAt),
	}
}

// The API emits naive ISO timestamps (no zone) for stored quizzes.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
