package nlp

import (
	"strings"
	"unicode"
)

// defaultMaxWordLength bounds the dictionary match window in runes
const defaultMaxWordLength = 5

// Segmenter turns raw input text into tagged tokens using maximal-match
// scanning against the static dictionary. It holds no mutable state and
// is safe for concurrent use.
type Segmenter struct {
	dict       map[string]PartOfSpeech
	stops      map[string]bool
	maxWordLen int
}

// NewSegmenter creates a segmenter over the built-in dictionary
func NewSegmenter() *Segmenter {
	return &Segmenter{
		dict:       dictionary,
		stops:      stopWords,
		maxWordLen: defaultMaxWordLength,
	}
}

// Tokenize scans the input left to right and returns tagged tokens.
// It is total: unknown characters degrade to single-rune UNKNOWN tokens
// and Latin letters are consumed as one UNKNOWN run.
func (s *Segmenter) Tokenize(text string) []Token {
	runes := []rune(text)
	tokens := make([]Token, 0, len(runes)/2)

	i := 0
	for i < len(runes) {
		r := runes[i]

		if unicode.IsSpace(r) {
			i++
			continue
		}

		if unicode.IsDigit(r) {
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			tokens = append(tokens, Token{Word: string(runes[i:j]), POS: POSNum, Start: i, End: j})
			i = j
			continue
		}

		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			tokens = append(tokens, Token{Word: string(r), POS: POSPunct, Start: i, End: i + 1})
			i++
			continue
		}

		// Maximal dictionary match: longest window first
		matched := false
		maxLen := s.maxWordLen
		if remaining := len(runes) - i; remaining < maxLen {
			maxLen = remaining
		}
		for length := maxLen; length >= 1; length-- {
			word := string(runes[i : i+length])
			if pos, ok := s.dict[word]; ok {
				tokens = append(tokens, Token{Word: word, POS: pos, Start: i, End: i + length})
				i += length
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if isLatin(r) {
			j := i
			for j < len(runes) && isLatin(runes[j]) {
				j++
			}
			tokens = append(tokens, Token{Word: string(runes[i:j]), POS: POSUnknown, Start: i, End: j})
			i = j
			continue
		}

		tokens = append(tokens, Token{Word: string(r), POS: POSUnknown, Start: i, End: i + 1})
		i++
	}

	return tokens
}

// TokenizeAndFilter tokenizes and drops stop words
func (s *Segmenter) TokenizeAndFilter(text string) []Token {
	tokens := s.Tokenize(text)
	filtered := tokens[:0:0]
	for _, t := range tokens {
		if !s.stops[t.Word] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Keywords returns the NOUN, VERB and TIME tokens of the input
func (s *Segmenter) Keywords(text string) []Token {
	var keywords []Token
	for _, t := range s.Tokenize(text) {
		switch t.POS {
		case POSNoun, POSVerb, POSTime:
			keywords = append(keywords, t)
		}
	}
	return keywords
}

// NounPhrases concatenates contiguous NOUN/ADJ runs longer than one token
func (s *Segmenter) NounPhrases(text string) []string {
	tokens := s.Tokenize(text)
	var phrases []string
	var current []string

	flush := func() {
		if len(current) > 1 {
			phrases = append(phrases, strings.Join(current, ""))
		}
		current = current[:0]
	}

	for _, t := range tokens {
		if t.POS == POSNoun || t.POS == POSAdj {
			current = append(current, t.Word)
		} else {
			flush()
		}
	}
	flush()

	return phrases
}

// ContainsPOS reports whether any token of the input carries the tag
func (s *Segmenter) ContainsPOS(text string, pos PartOfSpeech) bool {
	for _, t := range s.Tokenize(text) {
		if t.POS == pos {
			return true
		}
	}
	return false
}

// WordsByPOS returns the words of all tokens carrying the tag
func (s *Segmenter) WordsByPOS(text string, pos PartOfSpeech) []string {
	var words []string
	for _, t := range s.Tokenize(text) {
		if t.POS == pos {
			words = append(words, t.Word)
		}
	}
	return words
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
