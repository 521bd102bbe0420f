package llm

import (
	"log"
	"regexp"
	"strings"
)

// preamblePrefixes are conversational openers that models emit despite being
// told not to. Each one is checked in order and stripped when it leads.
var preamblePrefixes = []string{
	"Of course. ",
	"Of course! ",
	"Sure. ",
	"Sure! ",
	"Here is ",
	"Here's ",
	"Here is a ",
	"Here's a ",
	"The ",
	"This is ",
	"Below is ",
}

var (
	leadingLabel      = regexp.MustCompile(`^(?i)[^:\n]+:\s*\*{0,3}\s*`)
	professionalLabel = regexp.MustCompile(`^(?i)\*{0,2}Professional (Title|Summary|Description):\*{0,2}\s*`)
	jobLabel          = regexp.MustCompile(`^(?i)\*{0,2}Job (Title|Description):\*{0,2}\s*`)
	residualPreamble  = regexp.MustCompile(`^(?i)(of course|sure|certainly|here is|here's)\b`)
)

// CleanPreamble strips conversational preamble, leading labels, and markdown
// decoration from a model reply, leaving only the content. When the result
// still opens conversationally the reply is logged so the pattern list can
// be extended.
func CleanPreamble(text string) string {
	for _, prefix := range preamblePrefixes {
		if strings.HasPrefix(text, prefix) {
			text = text[len(prefix):]
		}
	}

	// Strip a leading "Some Label:" line, e.g. "Here is a summary:".
	text = leadingLabel.ReplaceAllString(text, "")

	text = strings.TrimSpace(strings.Trim(text, `"'*`))

	// Replies sometimes separate filler from content with *** breaks. The
	// longest segment is the content.
	if strings.Contains(text, "***") {
		longest := ""
		for _, part := range strings.Split(text, "***") {
			if len(part) > len(longest) {
				longest = part
			}
		}
		text = strings.TrimSpace(longest)
	}

	text = professionalLabel.ReplaceAllString(text, "")
	text = jobLabel.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if residualPreamble.MatchString(text) {
		log.Printf("[WARN] preamble survived cleaning: %.80q", text)
	}
	return text
}

// CleanJSONBlock removes markdown code block wrappers from JSON replies.
// Models often wrap JSON in ```json fences even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
