// ABOUTME: Best-effort plain-text extraction from feed-supplied HTML fragments
// ABOUTME: Tokenizer-based tag stripping plus sentence-bounded summarization

package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// ToPlainText strips markup and entities from an HTML fragment, returning
// whitespace-collapsed plain text. Script and style content is skipped.
// This is deliberately not a sanitizer; it only extracts readable text.
func ToPlainText(fragment string) string {
	if fragment == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapse(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isSkipped(string(name)) {
				skipDepth++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if isSkipped(string(name)) && skipDepth > 0 {
				skipDepth--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			// <br/> and friends separate words too
			b.WriteByte(' ')
		case html.TextToken:
			if skipDepth == 0 {
				// Text() already decodes entities
				b.Write(z.Text())
			}
		}
	}
}

func isSkipped(tag string) bool {
	return tag == "script" || tag == "style"
}

// collapse normalizes all whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SummarizeToSentences truncates text to at most max sentences, splitting
// on terminal punctuation followed by whitespace.
func SummarizeToSentences(text string, max int) string {
	if text == "" || max <= 0 {
		return ""
	}

	clean := collapse(text)
	var sentences []string
	start := 0
	runes := []rune(clean)

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// consume a run of terminal punctuation ("..." / "?!")
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && runes[i+1] == ' ' {
			sentences = append(sentences, string(runes[start:i+1]))
			start = i + 2
			i++
			if len(sentences) == max {
				return strings.Join(sentences, " ")
			}
		}
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	if len(sentences) > max {
		sentences = sentences[:max]
	}
	return strings.Join(sentences, " ")
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
