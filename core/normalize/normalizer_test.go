package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeatLine(line string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = line
	}
	return out
}

func TestStripRepeatedLines(t *testing.T) {
	long := strings.Repeat("x", MaxBoilerplateLen+1)
	tests := []struct {
		name    string
		repeats int
		line    string
		kept    bool
	}{
		{"below threshold", RepeatThreshold - 1, "www.fomesoutra.com", true},
		{"at threshold", RepeatThreshold, "www.fomesoutra.com", false},
		{"at threshold but long", RepeatThreshold, long, true},
		{"exactly max length", RepeatThreshold, strings.Repeat("é", MaxBoilerplateLen), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append([]string{"Exercice 1"}, repeatLine(tt.line, tt.repeats)...)
			got := StripRepeatedLines(strings.Join(lines, "\n"))
			if tt.kept {
				assert.Equal(t, strings.Join(lines, "\n"), got)
			} else {
				assert.Equal(t, "Exercice 1", got)
			}
		})
	}
}

func TestStripRepeatedLines_TrimsBeforeCounting(t *testing.T) {
	text := strings.Join(repeatLine("  Page  ", RepeatThreshold), "\n\n") + "\nContenu"
	assert.Equal(t, "Contenu", StripRepeatedLines(text))
}

func TestNormalize(t *testing.T) {
	in := "Theoreme  de\tPythagore\r\n\r\n   \nSoit ABC   un triangle \n\n\nrectangle en A"
	assert.Equal(t, "Theoreme de Pythagore\n\nSoit ABC un triangle\n\nrectangle en A", Normalize(in))
	assert.Equal(t, "", Normalize(" \n\t\n"))
}

func TestClean(t *testing.T) {
	header := "BEPC 2019 - Mathematiques"
	var lines []string
	for i := 0; i < RepeatThreshold; i++ {
		lines = append(lines, header, "Question "+string(rune('A'+i)))
	}
	got := Clean(strings.Join(lines, "\n"))

	assert.NotContains(t, got, header)
	assert.True(t, strings.HasPrefix(got, "Question A\n\nQuestion B"))
}
