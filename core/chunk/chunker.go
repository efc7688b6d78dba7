// Package chunk splits cleaned document text into size-bounded parts along
// paragraph boundaries. Uses a simple whitespace tokenizer (words ≈ tokens).
package chunk

import (
	"strings"

	"github.com/gaurav-prasanna/studyharvest/core"
)

const (
	// DefaultMaxTokens is the part size for every source type except books.
	DefaultMaxTokens = 9000
	// BookMaxTokens is the part size for livre documents.
	BookMaxTokens = 5000

	paragraphSep = "\n\n"
)

// Chunker splits text into parts of at most MaxTokens words.
type Chunker struct {
	MaxTokens int
}

// New creates a Chunker with the given limit.
// Defaults to DefaultMaxTokens if maxTokens <= 0.
func New(maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{MaxTokens: maxTokens}
}

// ForSourceType creates a Chunker sized for the given source type.
func ForSourceType(sourceType core.SourceType) *Chunker {
	return New(MaxTokensFor(sourceType))
}

// MaxTokensFor returns the part size used for a source type.
func MaxTokensFor(sourceType core.SourceType) int {
	if sourceType == core.SourceLivre {
		return BookMaxTokens
	}
	return DefaultMaxTokens
}

// Chunk splits text with the chunker's limit.
func (c *Chunker) Chunk(text string) []string {
	return SplitLongContent(text, c.MaxTokens)
}

// CountTokens counts whitespace-separated words.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}

// SplitLongContent returns []string{text} untouched when it fits in
// maxTokens. Otherwise paragraphs are packed greedily into parts; a single
// paragraph larger than maxTokens becomes an oversized part of its own.
func SplitLongContent(text string, maxTokens int) []string {
	if CountTokens(text) <= maxTokens {
		return []string{text}
	}

	var chunks []string
	var current []string
	currentTokens := 0

	for _, paragraph := range strings.Split(text, paragraphSep) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		tokens := CountTokens(paragraph)
		if len(current) > 0 && currentTokens+tokens > maxTokens {
			chunks = append(chunks, strings.Join(current, paragraphSep))
			current = []string{paragraph}
			currentTokens = tokens
			continue
		}
		current = append(current, paragraph)
		currentTokens += tokens
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, paragraphSep))
	}
	return chunks
}
