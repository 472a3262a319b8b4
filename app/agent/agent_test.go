package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records the last prompt and replies with a fixed answer.
type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func TestRefineQuery(t *testing.T) {
	gen := &stubGenerator{reply: "  What vaccines does a puppy need?  "}
	a := New(gen, 30000)

	refined, err := a.RefineQuery(context.Background(), "puppy vaccines")
	require.NoError(t, err)
	assert.Equal(t, "What vaccines does a puppy need?", refined)
	assert.Contains(t, gen.lastPrompt, "puppy vaccines")
	assert.Contains(t, gen.lastPrompt, "Refined Query")
}

func TestRefineQueryPropagatesError(t *testing.T) {
	genErr := errors.New("provider down")
	a := New(&stubGenerator{err: genErr}, 30000)

	_, err := a.RefineQuery(context.Background(), "hello")
	assert.ErrorIs(t, err, genErr)
}

func TestComposePrompt(t *testing.T) {
	a := New(&stubGenerator{}, 30000)

	prompt := a.ComposePrompt("how often to feed a kitten?", []string{"ctx1", "ctx2"}, "English")

	assert.Contains(t, prompt, "how often to feed a kitten?")
	assert.Contains(t, prompt, "ctx1 ctx2")
	assert.Contains(t, prompt, "Answer ONLY in English")
	assert.Contains(t, prompt, "Petcare Virtual Assistant")
}

func TestComposePromptCleansPassages(t *testing.T) {
	a := New(&stubGenerator{}, 30000)

	prompt := a.ComposePrompt("q", []string{"line\nbreak", `has "quotes" and 'more'`}, "English")

	assert.NotContains(t, prompt, "\nbreak")
	assert.Contains(t, prompt, "line break")
	assert.Contains(t, prompt, "has quotes and more")
}

func TestGenerateAnswer(t *testing.T) {
	gen := &stubGenerator{reply: "Feed small portions four times a day."}
	a := New(gen, 30000)

	answer, err := a.GenerateAnswer(context.Background(), "composed prompt")
	require.NoError(t, err)
	assert.Equal(t, "Feed small portions four times a day.", answer)
	assert.Equal(t, "composed prompt", gen.lastPrompt)
	assert.Equal(t, 1, gen.calls)
}

func TestCleanPassage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quotes stripped", `say "hi" to 'them'`, "say hi to them"},
		{"newlines become spaces", "a\nb\nc", "a b c"},
		{"whitespace collapsed", "  a   b  ", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanPassage(tt.input))
		})
	}
}

func TestCountTokens(t *testing.T) {
	count, err := CountTokens("hello world")
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	long, err := CountTokens(strings.Repeat("hello world ", 100))
	require.NoError(t, err)
	assert.Greater(t, long, count)
}
