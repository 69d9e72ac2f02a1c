package services

import (
	"encoding/json"
	"strings"

	"github.com/wastewatch/wastewatch-backend/internal/models"
)

// SeverityNeutral marks content the cache could not grade, including the
// fallback item synthesized from an unparseable provider response.
const SeverityNeutral = "info"

type providerContentItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Severity string `json:"severity"`
}

// parseProviderItems pulls structured items out of a free-text provider
// response. It returns nil when no well-formed JSON segment is present; the
// caller decides what degraded shape to serve instead.
func parseProviderItems(text string) []providerContentItem {
	segment, ok := extractJSONSegment(text)
	if !ok {
		return nil
	}

	var items []providerContentItem
	if err := json.Unmarshal([]byte(segment), &items); err != nil {
		var single providerContentItem
		if err := json.Unmarshal([]byte(segment), &single); err != nil {
			return nil
		}
		items = []providerContentItem{single}
	}

	valid := make([]providerContentItem, 0, len(items))
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		item.Summary = strings.TrimSpace(item.Summary)
		if item.Title == "" && item.Summary == "" {
			continue
		}
		if !models.ValidSeverity(item.Severity) {
			item.Severity = SeverityNeutral
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

// extractJSONSegment finds the first syntactically well-formed JSON array or
// object embedded in text. Models often wrap payloads in markdown fences or
// surround them with prose, so fences are stripped first and scanning starts
// at each opening bracket.
func extractJSONSegment(text string) (string, bool) {
	text = stripCodeFence(text)
	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		end := matchBalanced(text, i)
		if end < 0 {
			continue
		}
		segment := text[i : end+1]
		if json.Valid([]byte(segment)) {
			return segment, true
		}
	}
	return "", false
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// matchBalanced returns the index of the bracket closing the one at start,
// ignoring brackets inside JSON strings, or -1 if it never closes.
func matchBalanced(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
