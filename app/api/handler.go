package api

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"petcare/app/agent"
	"petcare/model"
	"petcare/store"
	"petcare/types"
)

// Canned reply used when retrieval finds nothing relevant. The generator is
// never called in that case.
const (
	noPassagesMessage  = "No relevant passages found."
	noPassagesResponse = "I'm sorry, but I couldn't find relevant information."
)

// RequestHandler serves the chat endpoint: refine the raw query, retrieve
// the nearest chunks, compose the grounded prompt and generate the answer.
type RequestHandler struct {
	contextStore store.VectorStorer
	embedder     model.EmbedderInterface
	agent        *agent.Agent
	topK         int
	logger       *slog.Logger
}

func NewRequestHandler(contextStore store.VectorStorer, embedder model.EmbedderInterface, ag *agent.Agent, topK int) *RequestHandler {
	return &RequestHandler{
		contextStore: contextStore,
		embedder:     embedder,
		agent:        ag,
		topK:         topK,
		logger:       slog.Default(),
	}
}

func (h *RequestHandler) HandleGenerateAnswer(c *fiber.Ctx) error {
	var params types.QueryParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	// Reject before any provider call.
	if strings.TrimSpace(params.Query) == "" {
		return ErrEmptyQuery()
	}
	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	ctx := c.UserContext()

	refined, err := h.agent.RefineQuery(ctx, params.Query)
	if err != nil {
		return err
	}
	h.logger.Info("query refined", "request_id", c.Locals("request_id"), "refined", refined)

	passages, err := h.retrieve(c, refined)
	if err != nil {
		return err
	}

	if len(passages) == 0 {
		return c.JSON(types.NoContextResponse{
			Message:  noPassagesMessage,
			Response: noPassagesResponse,
		})
	}

	prompt := h.agent.ComposePrompt(refined, passages, params.Language)
	answer, err := h.agent.GenerateAnswer(ctx, prompt)
	if err != nil {
		return err
	}

	return c.JSON(types.AnswerResponse{
		RefinedQuery: refined,
		Response:     answer,
	})
}

// retrieve embeds the refined query and fetches the topK nearest chunk
// texts, nearest-first. Zero matches is a valid outcome. An embedding
// failure at query time is fatal to the request.
func (h *RequestHandler) retrieve(c *fiber.Ctx, refined string) ([]string, error) {
	vector, err := h.embedder.Embed(c.UserContext(), refined)
	if err != nil {
		return nil, err
	}

	results, err := h.contextStore.Search(c.UserContext(), vector, h.topK)
	if err != nil {
		return nil, err
	}

	passages := make([]string, 0, len(results))
	for _, result := range results {
		passages = append(passages, result.Text)
	}
	return passages, nil
}
