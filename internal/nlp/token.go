// Package nlp implements the command-understanding pipeline: a
// dictionary-driven segmenter, a rule-based intent classifier and a
// regex entity extractor for Chinese attendance-management phrasing.
package nlp

// PartOfSpeech tags a segmented token
type PartOfSpeech string

const (
	POSNoun       PartOfSpeech = "NOUN"
	POSVerb       PartOfSpeech = "VERB"
	POSAdj        PartOfSpeech = "ADJ"
	POSNum        PartOfSpeech = "NUM"
	POSQuantifier PartOfSpeech = "QUANTIFIER"
	POSTime       PartOfSpeech = "TIME"
	POSPerson     PartOfSpeech = "PERSON"
	POSPlace      PartOfSpeech = "PLACE"
	POSOrg        PartOfSpeech = "ORG"
	POSPunct      PartOfSpeech = "PUNCT"
	POSUnknown    PartOfSpeech = "UNKNOWN"
)

// Token is one segmented word with its tag and rune offsets into the
// input. Tokens are immutable once produced.
type Token struct {
	Word  string       `json:"word"`
	POS   PartOfSpeech `json:"pos"`
	Start int          `json:"start"`
	End   int          `json:"end"`
}
