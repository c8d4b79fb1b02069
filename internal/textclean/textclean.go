// Package textclean normalizes resume and job text before extraction:
// unicode NFKC, newline unification, de-hyphenation across line breaks,
// markdown and bullet stripping, whitespace collapse.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreakRe = regexp.MustCompile(`(\w)-\n(\w)`)
	spacesRe      = regexp.MustCompile(`[ \t]+`)
	newlinesRe    = regexp.MustCompile(`\n{3,}`)

	codeFenceRe  = regexp.MustCompile("(?s)```(.*?)```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldAltRe    = regexp.MustCompile(`__([^_]+)__`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	italicAltRe  = regexp.MustCompile(`_([^_]+)_`)
	headingRe    = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`)
	decorLineRe  = regexp.MustCompile(`(?m)^[ \t]*[-*_\x{2022}\x{00B7}]{3,}[ \t]*$`)
	bulletRe     = regexp.MustCompile(`(?m)^[ \t]*[-*+\x{2022}\x{2023}\x{25E6}\x{2013}\x{2014}\x{00B7}\x{25AA}\x{25CF}][ \t]+`)
	listNumberRe = regexp.MustCompile(`(?m)^[ \t]*\(?([0-9]+|[A-Za-z]|[ivxlcdmIVXLCDM]+)[).][ \t]+`)
)

// Normalize applies NFKC, unifies newlines, joins words hyphenated across
// line breaks ("micro-\nservices" -> "microservices"), collapses runs of
// spaces and tabs, and caps consecutive newlines at two.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := norm.NFKC.String(text)
	t = strings.ReplaceAll(t, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = hyphenBreakRe.ReplaceAllString(t, "$1$2")
	t = spacesRe.ReplaceAllString(t, " ")
	t = newlinesRe.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// StripMarkdown removes markdown syntax, list bullets, and decorative
// lines while preserving the content: heading text is kept, link labels
// and image alt text replace their targets, emphasis markers and code
// fences are unwrapped.
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}
	t := codeFenceRe.ReplaceAllString(text, "$1")
	t = inlineCodeRe.ReplaceAllString(t, "$1")

	t = imageRe.ReplaceAllString(t, "$1")
	t = linkRe.ReplaceAllString(t, "$1")

	t = boldRe.ReplaceAllString(t, "$1")
	t = boldAltRe.ReplaceAllString(t, "$1")
	t = italicRe.ReplaceAllString(t, "$1")
	t = italicAltRe.ReplaceAllString(t, "$1")

	t = headingRe.ReplaceAllString(t, "")
	t = decorLineRe.ReplaceAllString(t, "")
	t = bulletRe.ReplaceAllString(t, "")
	t = listNumberRe.ReplaceAllString(t, "")
	return t
}

// Clean runs the full pipeline: normalize, strip markdown, normalize
// again to collapse whatever the stripping left behind.
func Clean(text string) string {
	return Normalize(StripMarkdown(Normalize(text)))
}
