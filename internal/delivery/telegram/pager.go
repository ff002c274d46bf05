package telegram

import (
	"fmt"
	"unicode/utf16"
)

const (
	// Telegram rejects texts longer than 4096 UTF-16 units. Escape
	// backslashes are counted too, so the measure is conservative.
	maxMessageLen = 4096
	pageBudget    = maxMessageLen - 96 // room for the page indicator

	questionsPerPage = 8
	entriesPerPage   = 8
)

// page is one message worth of rendered blocks. Blocks [From, To) are on it.
type page struct {
	Text string
	From int
	To   int
}

// paginate spreads blocks over as many pages as needed. Every block lands
// on exactly one page, in order; a block that alone exceeds the budget
// gets a page of its own. header renders the top of page i and footer is
// appended after the last block.
func paginate(header func(i int) string, blocks []string, footer string, perPage int) []page {
	var pages []page
	cur := page{Text: header(0)}

	for i, b := range blocks {
		full := cur.To-cur.From >= perPage ||
			textLen(cur.Text)+textLen(b) > pageBudget
		if cur.To > cur.From && full {
			pages = append(pages, cur)
			cur = page{Text: header(len(pages)), From: i, To: i}
		}
		cur.Text += b
		cur.To = i + 1
	}

	if footer != "" {
		if cur.To > cur.From && textLen(cur.Text)+textLen(footer) > pageBudget {
			pages = append(pages, cur)
			cur = page{Text: header(len(pages)), From: len(blocks), To: len(blocks)}
		}
		cur.Text += footer
	}
	pages = append(pages, cur)

	if len(pages) > 1 {
		for i := range pages {
			pages[i].Text += "\n" + italic(fmt.Sprintf("Page %d/%d", i+1, len(pages)))
		}
	}
	return pages
}

// clampPage keeps i within [0, n).
func clampPage(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func textLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
