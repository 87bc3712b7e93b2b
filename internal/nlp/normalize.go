package nlp

import (
	"strconv"
	"strings"
	"unicode"
)

// chineseDigits maps single Chinese numerals to their values
var chineseDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// Normalize prepares raw input for the pipeline: trims, converts
// full-width punctuation and digits to half-width, collapses whitespace,
// strips a trailing punctuation run and rewrites Chinese numerals in
// date and quantity positions (including compounds like 十五) as Arabic
// digits.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = toHalfWidth(s)
	s = collapseWhitespace(s)
	s = stripTrailingPunct(s)
	s = convertChineseNumerals(s)
	return s
}

// toHalfWidth converts full-width ASCII variants and common Chinese
// punctuation to their half-width equivalents
func toHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '！' && r <= '～': // full-width ASCII block
			b.WriteRune(r - 0xFEE0)
		case r == '　': // ideographic space
			b.WriteRune(' ')
		case r == '。':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripTrailingPunct(s string) string {
	runes := []rune(s)
	end := len(runes)
	for end > 0 {
		r := runes[end-1]
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			end--
		} else {
			break
		}
	}
	return string(runes[:end])
}

// numeralUnits are the runes that mark a preceding numeral run as a
// date or quantity; runs without a unit stay untouched so names like
// 张三 survive normalization
var numeralUnits = map[rune]bool{
	'年': true, '月': true, '日': true, '号': true,
	'周': true, '份': true, '个': true,
}

// convertChineseNumerals rewrites Chinese numeral runs followed by a
// date or quantity unit as Arabic digits. Compound forms up to 99 are
// handled (十五 → 15, 二十三 → 23); longer forms fall back to
// digit-by-digit conversion.
func convertChineseNumerals(s string) string {
	runes := []rune(s)
	var b strings.Builder

	i := 0
	for i < len(runes) {
		if !isChineseNumeral(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isChineseNumeral(runes[j]) {
			j++
		}
		if j < len(runes) && numeralUnits[runes[j]] {
			b.WriteString(numeralRunToArabic(runes[i:j]))
		} else {
			b.WriteString(string(runes[i:j]))
		}
		i = j
	}

	return b.String()
}

func isChineseNumeral(r rune) bool {
	if r == '十' {
		return true
	}
	_, ok := chineseDigits[r]
	return ok
}

// numeralRunToArabic converts one contiguous numeral run
func numeralRunToArabic(run []rune) string {
	// Compound tens: 十, 十五, 二十, 二十三
	if idx := indexRune(run, '十'); idx >= 0 && len(run) <= 3 {
		tens := 1
		if idx == 1 {
			tens = chineseDigits[run[0]]
		}
		units := 0
		if idx < len(run)-1 {
			units = chineseDigits[run[len(run)-1]]
		}
		if idx <= 1 {
			return strconv.Itoa(tens*10 + units)
		}
	}

	// Plain digit sequence: 二零二四 → 2024
	var b strings.Builder
	for _, r := range run {
		if d, ok := chineseDigits[r]; ok {
			b.WriteString(strconv.Itoa(d))
		}
	}
	return b.String()
}

func indexRune(runes []rune, target rune) int {
	for i, r := range runes {
		if r == target {
			return i
		}
	}
	return -1
}
