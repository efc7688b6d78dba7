package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/studyharvest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paragraph returns a paragraph of exactly n words, tagged with id.
func paragraph(id, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("p%dw%d", id, i)
	}
	return strings.Join(words, " ")
}

func TestSplitLongContent_FitsReturnsInputUntouched(t *testing.T) {
	text := "  Exercice 1\n\n\n\nSoit  ABC\t un triangle  "
	assert.Equal(t, []string{text}, SplitLongContent(text, 10))
	assert.Equal(t, []string{""}, SplitLongContent("", 10))
}

func TestSplitLongContent_PacksParagraphs(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 5; i++ {
		paragraphs = append(paragraphs, paragraph(i, 10))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := SplitLongContent(text, 25)
	require.Len(t, chunks, 3)
	assert.Equal(t, paragraphs[0]+"\n\n"+paragraphs[1], chunks[0])
	assert.Equal(t, paragraphs[2]+"\n\n"+paragraphs[3], chunks[1])
	assert.Equal(t, paragraphs[4], chunks[2])

	for _, c := range chunks {
		assert.LessOrEqual(t, CountTokens(c), 25)
	}
	assert.Equal(t, text, strings.Join(chunks, "\n\n"))
}

func TestSplitLongContent_OversizedParagraphStaysWhole(t *testing.T) {
	big := paragraph(1, 40)
	text := paragraph(0, 5) + "\n\n" + big + "\n\n" + paragraph(2, 5)

	chunks := SplitLongContent(text, 20)
	require.Len(t, chunks, 3)
	assert.Equal(t, big, chunks[1])
	assert.Equal(t, 40, CountTokens(chunks[1]))
}

func TestSplitLongContent_SkipsBlankParagraphs(t *testing.T) {
	text := paragraph(0, 6) + "\n\n  \n\n" + paragraph(1, 6)
	assert.Equal(t, []string{paragraph(0, 6), paragraph(1, 6)}, SplitLongContent(text, 10))
}

func TestMaxTokensFor(t *testing.T) {
	assert.Equal(t, BookMaxTokens, MaxTokensFor(core.SourceLivre))
	for _, st := range []core.SourceType{core.SourceCours, core.SourceExercice, core.SourceAnnale} {
		assert.Equal(t, DefaultMaxTokens, MaxTokensFor(st))
	}
	assert.Equal(t, BookMaxTokens, ForSourceType(core.SourceLivre).MaxTokens)
}

func TestNew(t *testing.T) {
	assert.Equal(t, DefaultMaxTokens, New(0).MaxTokens)
	assert.Equal(t, DefaultMaxTokens, New(-3).MaxTokens)
	assert.Equal(t, 42, New(42).MaxTokens)
}
