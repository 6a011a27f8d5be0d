// Package normalize provides script-aware text normalization for matching
// and displaying Persian text.
//
// Persian content arrives with mixed character conventions: Arabic keyboard
// layouts produce Arabic Yeh (U+064A) and Kaf (U+0643) where Persian
// keyboards produce U+06CC and U+06A9, copied text carries diacritics and
// tatweel, and numerals appear in ASCII, Arabic-Indic, and Extended
// Arabic-Indic forms. Matching must treat all of these as equivalent.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// charFolds maps visually equivalent character forms to a canonical rune.
//
//nolint:gochecknoglobals // Static fold table.
var charFolds = map[rune]rune{
	// Arabic Yeh variants to Persian Yeh.
	'ي': 'ی', // ي
	'ى': 'ی', // ى (alef maksura)
	'ے': 'ی', // ے
	// Arabic Kaf to Persian Kaf.
	'ك': 'ک', // ك
	// Alef variants to bare Alef.
	'آ': 'ا', // آ
	'أ': 'ا', // أ
	'إ': 'ا', // إ
	'ٱ': 'ا', // ٱ
	// Waw and Heh variants.
	'ؤ': 'و', // ؤ
	'ة': 'ه', // ة
	'ۀ': 'ه', // ۀ
	// Hamza-carrier Yeh.
	'ئ': 'ی', // ئ
}

// digitFolds maps Arabic-Indic (U+0660..) and Extended Arabic-Indic
// (U+06F0..) digits to ASCII.
//
//nolint:gochecknoglobals // Static fold table.
var digitFolds = func() map[rune]rune {
	m := make(map[rune]rune, 20)
	for i := rune(0); i < 10; i++ {
		m['٠'+i] = '0' + i
		m['۰'+i] = '0' + i
	}
	return m
}()

// asciiToPersianDigit maps ASCII digits to Extended Arabic-Indic digits
// used for Persian display.
//
//nolint:gochecknoglobals // Static fold table.
var asciiToPersianDigit = [10]rune{
	'۰', '۱', '۲', '۳', '۴',
	'۵', '۶', '۷', '۸', '۹',
}

// stripMarks removes combining marks (Arabic diacritics, Latin accents)
// after decomposition, then recomposes.
//
//nolint:gochecknoglobals // Reused transformer chain.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text folds s into its canonical matching form: marks and tatweel
// stripped, equivalent Perso-Arabic forms unified, digits folded to ASCII,
// case folded, whitespace collapsed.
func Text(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform failures only occur on invalid UTF-8; fall back to
		// the raw input rather than dropping the candidate.
		folded = s
	}

	folded = strings.Map(func(r rune) rune {
		switch {
		case r == 'ـ': // tatweel
			return -1
		case r == '‌', r == '‍': // ZWNJ, ZWJ
			return -1
		}
		if c, ok := charFolds[r]; ok {
			return c
		}
		if c, ok := digitFolds[r]; ok {
			return c
		}
		return unicode.ToLower(r)
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}

// Query normalizes a free-text search query. A query that folds to nothing
// (empty or whitespace-only) returns "", which callers treat as "no filter".
func Query(s string) string {
	return Text(s)
}

// Contains reports whether the normalized form of s contains the normalized
// form of substr.
func Contains(s, substr string) bool {
	return strings.Contains(Text(s), Text(substr))
}

// PersianDigits rewrites ASCII digits in s to Extended Arabic-Indic digits
// for display. Non-digit runes pass through unchanged.
func PersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return asciiToPersianDigit[r-'0']
		}
		return r
	}, s)
}
