package gemini

import (
	"regexp"
	"strings"
)

// openingFence matches a leading Markdown fence with an optional language tag.
var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*\\s*")

const closingFence = "```"

// CleanResponseText removes one leading and one trailing code fence from
// model output, along with surrounding whitespace. Text without fences is
// returned trimmed and otherwise unchanged.
func CleanResponseText(text string) string {
	text = strings.TrimSpace(text)
	text = openingFence.ReplaceAllString(text, "")
	text = strings.TrimSuffix(text, closingFence)
	return strings.TrimSpace(text)
}
