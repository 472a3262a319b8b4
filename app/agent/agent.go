package agent

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"petcare/model"
)

const (
	answerTemperature = 0.3
	answerMaxTokens   = 1024
	refineMaxTokens   = 256
)

// Agent owns the query-refinement and prompt-composition logic around the
// answer generator. It holds no per-request state.
type Agent struct {
	generator       model.GeneratorInterface
	logger          *slog.Logger
	maxPromptTokens int
}

func New(generator model.GeneratorInterface, maxPromptTokens int) *Agent {
	return &Agent{
		generator:       generator,
		logger:          slog.Default(),
		maxPromptTokens: maxPromptTokens,
	}
}

// RefineQuery rewrites a raw user query into a clearer, retrieval-optimized
// form. The refined query only steers retrieval, it is never shown to the
// user as ground truth. A generation failure aborts the enclosing request.
func (a *Agent) RefineQuery(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert in query understanding. Your task is to refine the given user query to make it clearer, without changing its meaning. Keep it concise, more specific, and well-structured for better information retrieval.

If there are any grammar mistakes, correct them.

If the user is asking a question but has not included a question mark, convert it into a proper question.

### User Query:
%s

### Refined Query:`, query)

	refined, err := a.generator.Generate(ctx, prompt, answerTemperature, refineMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(refined), nil
}

// ComposePrompt builds the grounded generation prompt from the refined
// query, the retrieved passages and the target response language. Passages
// are cleaned and joined into a single context block; the instructions tell
// the model to fall back to its own knowledge when the context is thin. No
// truncation happens here, the caller is responsible for input limits.
func (a *Agent) ComposePrompt(query string, passages []string, language string) string {
	cleaned := make([]string, 0, len(passages))
	for _, passage := range passages {
		cleaned = append(cleaned, cleanPassage(passage))
	}
	contextBlock := strings.Join(cleaned, " ")

	return fmt.Sprintf(`You are a professional, knowledgeable, and friendly Petcare Virtual Assistant. Your goal is to help pet owners with reliable and practical advice on pet health, symptoms, cures, nutrition, grooming, and behavior. Your responses should be detailed, well-structured, and easy to understand. Provide examples when needed.

### Instructions:
1. If the user greets (e.g., 'hi', 'hello', 'hey'), respond politely with a warm greeting.
2. If the user asks about pet care, provide thorough and structured advice. Avoid short answers.
3. Use the given context (if available) to answer the query. If the context is insufficient, rely on your own knowledge.
4. Always provide additional useful advice to enhance the user's understanding.
5. Keep responses professional yet friendly, making pet owners feel comfortable and confident.
6. IMPORTANT: Answer ONLY in %s. Do not include any words in any other language.

### User Query:
%s

### Relevant Context (if available):
%s

### Your Response:`, language, query, contextBlock)
}

// GenerateAnswer runs the composed prompt through the generator at the
// fixed chat settings. The prompt's token count is logged as an input-limit
// guard before the call.
func (a *Agent) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	if count, err := CountTokens(prompt); err == nil {
		if count > a.maxPromptTokens {
			a.logger.Warn("prompt exceeds configured token budget", "tokens", count, "budget", a.maxPromptTokens)
		} else {
			a.logger.Debug("prompt composed", "tokens", count)
		}
	}
	return a.generator.Generate(ctx, prompt, answerTemperature, answerMaxTokens)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// cleanPassage strips quote characters and newlines from a retrieved
// passage and collapses whitespace runs to single spaces.
func cleanPassage(text string) string {
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// CountTokens counts prompt tokens with a cl100k-compatible encoding.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
