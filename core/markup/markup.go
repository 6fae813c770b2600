// Package markup reduces the retrieval endpoint's HTML passage fragments
// to a minimal display format: plain text with verse numbers kept as
// <sup>N</sup> markers and paragraph breaks kept as bare <p> tags.
//
// The endpoint's HTML dialect wraps verse numbers in spans carrying a
// data-number attribute, styles the divine name with small-caps spans,
// and classes its paragraphs (prose "p", poetry "q1", headings "s1").
// Normalization is a fixed sequence of pure string rewrites; the order is
// load-bearing, since verse markers must take their <sup> form before the
// generic span strip runs.
package markup

import (
	"regexp"
	"strings"
)

// rule is one pipeline stage, a pure string-to-string transform.
type rule func(string) string

var (
	// Heading paragraphs: <p class="s1">The Healing at the Pool</p>
	titlePattern = regexp.MustCompile(`(?s)<p class="(?:mt|ms|s|sr|r|d)\d*"[^>]*>.*?</p>`)

	// Verse markers: <span data-number="7" data-sid="JHN 9:7" class="v">7</span>
	versePattern = regexp.MustCompile(`<span data-number="(\d+)"[^>]*class="v"[^>]*>[^<]*</span>`)

	// Divine name styling: <span class="nd">Lord</span>
	divineNamePattern = regexp.MustCompile(`(?s)<span class="nd">(.*?)</span>`)

	// Any remaining span wrapper, opening or closing
	spanPattern = regexp.MustCompile(`</?span[^>]*>`)

	// Attributed paragraphs: <p class="p">, <p class="q1">
	paraAttrPattern = regexp.MustCompile(`<p [^>]+>`)

	// Any tag at all, for the final keep-list pass
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	spacePattern = regexp.MustCompile(`\s+`)
)

// pipeline lists the rewrite stages in application order.
var pipeline = []rule{
	stripHeadings,
	markVerseNumbers,
	unwrapDivineNames,
	stripSpans,
	bareParagraphs,
	stripOtherTags,
	collapseWhitespace,
}

// Normalize converts an HTML passage fragment to the minimal display
// format. It is deterministic and idempotent on its own output.
func Normalize(fragment string) string {
	out := fragment
	for _, stage := range pipeline {
		out = stage(out)
	}
	return out
}

// stripHeadings removes heading and title paragraphs with their content.
func stripHeadings(s string) string {
	return titlePattern.ReplaceAllString(s, "")
}

// markVerseNumbers rewrites verse-number spans to <sup>N</sup>, dropping
// the span's own text, which duplicates the number.
func markVerseNumbers(s string) string {
	return versePattern.ReplaceAllString(s, "<sup>$1</sup>")
}

// unwrapDivineNames keeps the text of small-caps divine-name spans.
func unwrapDivineNames(s string) string {
	return divineNamePattern.ReplaceAllString(s, "$1")
}

// stripSpans drops every remaining span wrapper, keeping inner text.
func stripSpans(s string) string {
	return spanPattern.ReplaceAllString(s, "")
}

// bareParagraphs drops paragraph attributes, keeping the tag itself.
func bareParagraphs(s string) string {
	return paraAttrPattern.ReplaceAllString(s, "<p>")
}

// stripOtherTags removes every tag the earlier stages did not produce.
// Only bare <p> markers and <sup> verse markers survive; closing </p>
// tags go too, leaving <p> as a break marker.
func stripOtherTags(s string) string {
	return tagPattern.ReplaceAllStringFunc(s, func(tag string) string {
		switch tag {
		case "<p>", "<sup>", "</sup>":
			return tag
		}
		return ""
	})
}

// collapseWhitespace folds all whitespace runs, newlines included, to a
// single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
