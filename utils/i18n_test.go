package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"khadamati-server/models"
)

func TestLocalizedTextPrefersRequestedLanguage(t *testing.T) {
	assert.Equal(t, "Plumbing", LocalizedText("Plumbing", "سباكة", models.LanguageEnglish))
	assert.Equal(t, "سباكة", LocalizedText("Plumbing", "سباكة", models.LanguageArabic))
}

func TestLocalizedTextFallsBackToOtherLanguage(t *testing.T) {
	assert.Equal(t, "سباكة", LocalizedText("", "سباكة", models.LanguageEnglish))
	assert.Equal(t, "Plumbing", LocalizedText("Plumbing", "", models.LanguageArabic))
}

func TestLocalizedTextBothEmpty(t *testing.T) {
	assert.Equal(t, "", LocalizedText("", "", models.LanguageEnglish))
	assert.Equal(t, "", LocalizedText("", "", models.LanguageArabic))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirectionLTR, Direction(models.LanguageEnglish))
	assert.Equal(t, DirectionRTL, Direction(models.LanguageArabic))
}

func TestLabelLookup(t *testing.T) {
	assert.Equal(t, "Pending", Label(models.LanguageEnglish, "pending"))
	assert.Equal(t, "قيد الانتظار", Label(models.LanguageArabic, "pending"))
}

func TestLabelUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Label(models.LanguageEnglish, "no_such_key"))
}

func TestLabelsCoversEveryKeyInBothLanguages(t *testing.T) {
	for _, lang := range []models.Language{models.LanguageEnglish, models.LanguageArabic} {
		table := Labels(lang)
		for key := range labels {
			assert.NotEmpty(t, table[key], "missing %s label for %q", lang, key)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	// Explicit query wins
	assert.Equal(t, models.LanguageArabic, ResolveLanguage("ar", models.LanguageEnglish, "en-US"))

	// Then the stored preference
	assert.Equal(t, models.LanguageArabic, ResolveLanguage("", models.LanguageArabic, "en-US"))

	// Then the Accept-Language header
	assert.Equal(t, models.LanguageArabic, ResolveLanguage("", "", "ar-BH,ar;q=0.9"))

	// Default is English
	assert.Equal(t, models.LanguageEnglish, ResolveLanguage("", "", ""))

	// Garbage query values are ignored
	assert.Equal(t, models.LanguageEnglish, ResolveLanguage("fr", "", ""))
}
