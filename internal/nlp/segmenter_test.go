package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	s := NewSegmenter()

	tokens := s.Tokenize("生成今天的考勤表")

	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Word: "生成", POS: POSVerb, Start: 0, End: 2}, tokens[0])
	assert.Equal(t, Token{Word: "今天", POS: POSTime, Start: 2, End: 4}, tokens[1])
	assert.Equal(t, Token{Word: "的", POS: POSUnknown, Start: 4, End: 5}, tokens[2])
	assert.Equal(t, Token{Word: "考勤表", POS: POSNoun, Start: 5, End: 8}, tokens[3])
}

func TestTokenizeLongestMatchWins(t *testing.T) {
	s := NewSegmenter()

	// 考勤记录 is a dictionary word; it must not split into 考勤 + 记录
	tokens := s.Tokenize("查询考勤记录")

	require.Len(t, tokens, 2)
	assert.Equal(t, "查询", tokens[0].Word)
	assert.Equal(t, "考勤记录", tokens[1].Word)
	assert.Equal(t, POSNoun, tokens[1].POS)
}

func TestTokenizeDigitRuns(t *testing.T) {
	s := NewSegmenter()

	tokens := s.Tokenize("生成2024年1月考勤表")

	var nums []string
	for _, tok := range tokens {
		if tok.POS == POSNum {
			nums = append(nums, tok.Word)
		}
	}
	assert.Equal(t, []string{"2024", "1"}, nums)
}

func TestTokenizeLatinRun(t *testing.T) {
	s := NewSegmenter()

	tokens := s.Tokenize("导出Excel表格")

	require.Len(t, tokens, 3)
	assert.Equal(t, "导出", tokens[0].Word)
	assert.Equal(t, Token{Word: "Excel", POS: POSUnknown, Start: 2, End: 7}, tokens[1])
	assert.Equal(t, "表格", tokens[2].Word)
}

func TestTokenizePunctuationAndUnknown(t *testing.T) {
	s := NewSegmenter()

	tokens := s.Tokenize("张三,考勤")

	require.Len(t, tokens, 4)
	assert.Equal(t, POSUnknown, tokens[0].POS) // 张
	assert.Equal(t, POSUnknown, tokens[1].POS) // 三
	assert.Equal(t, Token{Word: ",", POS: POSPunct, Start: 2, End: 3}, tokens[2])
	assert.Equal(t, "考勤", tokens[3].Word)
}

func TestTokenizeAndFilterDropsStopWords(t *testing.T) {
	s := NewSegmenter()

	tokens := s.TokenizeAndFilter("生成今天的考勤表")

	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Word
	}
	assert.Equal(t, []string{"生成", "今天", "考勤表"}, words)
}

func TestKeywords(t *testing.T) {
	s := NewSegmenter()

	keywords := s.Keywords("生成今天的考勤表")

	words := make([]string, len(keywords))
	for i, tok := range keywords {
		words[i] = tok.Word
	}
	assert.Equal(t, []string{"生成", "今天", "考勤表"}, words)
}

func TestNounPhrases(t *testing.T) {
	s := NewSegmenter()

	phrases := s.NounPhrases("生成详细考勤表模板")

	assert.Equal(t, []string{"详细考勤表模板"}, phrases)
}

func TestContainsPOS(t *testing.T) {
	s := NewSegmenter()

	assert.True(t, s.ContainsPOS("生成考勤表", POSVerb))
	assert.True(t, s.ContainsPOS("今天的记录", POSTime))
	assert.False(t, s.ContainsPOS("考勤表", POSVerb))
}

func TestWordsByPOS(t *testing.T) {
	s := NewSegmenter()

	verbs := s.WordsByPOS("生成并导出考勤表", POSVerb)

	assert.Equal(t, []string{"生成", "导出"}, verbs)
}
