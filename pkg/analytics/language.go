package analytics

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// minLanguageSample is the shortest text worth classifying.
const minLanguageSample = 20

// LanguageDetector guesses the language of document text.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector over the given languages, or over all
// supported languages when none are given. Low accuracy mode keeps memory
// use small.
func NewLanguageDetector(languages ...lingua.Language) *LanguageDetector {
	builder := lingua.NewLanguageDetectorBuilder()
	var b lingua.LanguageDetectorBuilder
	if len(languages) >= 2 {
		b = builder.FromLanguages(languages...)
	} else {
		b = builder.FromAllLanguages()
	}
	return &LanguageDetector{detector: b.WithLowAccuracyMode().Build()}
}

// Detect returns the lower-case ISO 639-1 code of the detected language, or
// "" when the text is too short or ambiguous.
func (d *LanguageDetector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < minLanguageSample {
		return ""
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
