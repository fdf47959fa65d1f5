package export

import (
	"regexp"
	"strings"
)

var (
	markdownHeaderRe = regexp.MustCompile(`(?m)^#+\s*`)
	markdownBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	latexOpenRe      = regexp.MustCompile(`\\?\\\(`)
	latexCloseRe     = regexp.MustCompile(`\\?\\\)`)
	blankRunRe       = regexp.MustCompile(`\n\s*\n`)
)

// CleanText strips markdown and LaTeX artifacts from model output so the
// rendered documents read as plain prose. Header markers and bold markers
// are removed, LaTeX math delimiters become plain parentheses, and runs of
// blank lines collapse to a single separator.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = markdownHeaderRe.ReplaceAllString(text, "")
	text = markdownBoldRe.ReplaceAllString(text, "$1")
	text = latexOpenRe.ReplaceAllString(text, "(")
	text = latexCloseRe.ReplaceAllString(text, ")")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// cleanLines splits cleaned text into non-empty trimmed lines.
func cleanLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(CleanText(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isBullet reports whether a line is a markdown-style list item.
func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

// bulletText strips the leading list marker from a bullet line.
func bulletText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "•-* "))
}
