// Package analytics derives reading statistics from document text.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// stopwords are skipped by Keywords.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "but": {},
	"by": {}, "can": {}, "could": {}, "did": {}, "do": {}, "does": {},
	"doing": {}, "down": {}, "each": {}, "even": {}, "every": {}, "few": {},
	"for": {}, "from": {}, "had": {}, "has": {}, "have": {}, "having": {},
	"he": {}, "her": {}, "here": {}, "him": {}, "his": {}, "how": {}, "i": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "just": {},
	"like": {}, "may": {}, "me": {}, "more": {}, "most": {}, "much": {},
	"must": {}, "my": {}, "no": {}, "nor": {}, "not": {}, "now": {}, "of": {},
	"off": {}, "on": {}, "once": {}, "one": {}, "only": {}, "or": {},
	"other": {}, "our": {}, "out": {}, "over": {}, "own": {}, "same": {},
	"she": {}, "should": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {}, "to": {},
	"too": {}, "under": {}, "until": {}, "up": {}, "us": {}, "very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "why": {}, "will": {}, "with": {},
	"would": {}, "yet": {}, "you": {}, "your": {},

	// Common web/UI noise words
	"click": {}, "link": {}, "menu": {}, "page": {}, "site": {},
	"share": {}, "subscribe": {}, "read": {}, "image": {},
}

// IsStopword checks if a word is a common stopword.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime formats the estimated reading time for a word count.
func ReadingTime(words int) string {
	if words <= 0 {
		return "< 1 min read"
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes == 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

func normalizeWord(word string) string {
	return strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// WordFrequency counts non-stopword words after lower-casing and trimming
// punctuation.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(text) {
		word = normalizeWord(word)
		if word == "" || len([]rune(word)) < 3 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// Keywords returns up to n of the most frequent words. Ties are broken
// alphabetically so the result is stable.
func Keywords(text string, n int) []string {
	frequencies := WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := min(n, len(counts))
	if limit < 0 {
		limit = 0
	}
	top := make([]string, limit)
	for i := 0; i < limit; i++ {
		top[i] = counts[i].Word
	}
	return top
}
