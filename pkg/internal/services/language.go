package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var languageDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		Build()
})

// DetectLanguage guesses the language of the given content and returns
// its lowercased ISO 639-1 code, or "unknown" when detection fails.
func DetectLanguage(content string) string {
	if len(strings.TrimSpace(content)) == 0 {
		return "unknown"
	}

	if language, ok := languageDetector().DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return "unknown"
}
