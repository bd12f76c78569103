package app

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// sanitizer strips every HTML construct from user-submitted text.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

// bannedTerms is a deliberately small built-in list; anything matching goes
// to the moderation queue instead of being rejected outright.
var bannedTerms = []string{
	"viagra", "casino bonus", "free crypto", "onlyfans",
}

// moderate decides the initial status of a review: "published" for clean
// text, "pending" when a heuristic trips. Heuristics: banned terms, link
// spam (2+ URLs), and shouting (mostly-uppercase long text).
func moderate(title, text string) string {
	full := strings.ToLower(title + " " + text)
	for _, term := range bannedTerms {
		if strings.Contains(full, term) {
			return domain.ReviewPending
		}
	}
	if strings.Count(full, "http://")+strings.Count(full, "https://") >= 2 {
		return domain.ReviewPending
	}
	if isShouting(text) {
		return domain.ReviewPending
	}
	return domain.ReviewPublished
}

func isShouting(s string) bool {
	var letters, upper int
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= 40 && upper*10 >= letters*8 // >=80% uppercase
}
