package tokenizer

import (
	"strings"

	"github.com/badele/wordfreq/internal/types"
)

var _ types.Tokenizer = (*WordTokenizer)(nil)

// Normalize lowercases the ASCII letters of line. Every other byte, including
// non-ASCII ones, is copied unchanged.
func Normalize(line string) string {
	i := 0
	for i < len(line) && !IsUpperLetter(line[i]) {
		i++
	}
	if i == len(line) {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line))
	sb.WriteString(line[:i])
	for ; i < len(line); i++ {
		c := line[i]
		if IsUpperLetter(c) {
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}

	return sb.String()
}

// WordTokenizer splits one normalized line into words in a single left to
// right pass, looking one byte behind and one byte ahead.
type WordTokenizer struct {
	line  string
	Words []string `json:"words"`
}

func NewWordTokenizer(line string) *WordTokenizer {
	return &WordTokenizer{
		line:  line,
		Words: make([]string, 0),
	}
}

func (t *WordTokenizer) Tokenize() []string {
	t.Words = t.Words[:0]
	t.Each(func(word string) {
		t.Words = append(t.Words, word)
	})

	return t.Words
}

// Each calls emit for every word of the line, in order, without building a
// slice.
func (t *WordTokenizer) Each(emit func(word string)) {
	line := t.line
	start := -1
	prev := byte(' ')

	for i := 0; i < len(line); i++ {
		c := line[i]
		next := byte(' ')
		if i+1 < len(line) {
			next = line[i+1]
		}

		if IsIllegal(c, prev, next) {
			if start >= 0 {
				emit(line[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}

		prev = c
	}

	if start >= 0 {
		emit(line[start:])
	}
}

// Tokenize is a shortcut for NewWordTokenizer(line).Tokenize().
func Tokenize(line string) []string {
	return NewWordTokenizer(line).Tokenize()
}
