package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"petcare/app/agent"
	"petcare/app/api"
	"petcare/app/middleware"
	"petcare/config"
	"petcare/diet"
	"petcare/model"
	"petcare/store"
)

// Server wires the process-wide collaborators (Gemini client, vector store
// handle) into the fiber app. They are constructed once at startup and torn
// down on shutdown.
type Server struct {
	cfg    *config.AppConfig
	logger *slog.Logger
	app    *fiber.App
	store  store.VectorStorer
}

func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	gemini, err := model.NewGemini(ctx, cfg.APIKey(), cfg.Model, cfg.Store.Dimension)
	if err != nil {
		return nil, err
	}

	vectorStore, err := store.NewChromemStore(cfg.Store.Path, cfg.Store.Collection, gemini)
	if err != nil {
		return nil, err
	}

	ag := agent.New(gemini, cfg.Model.MaxPromptToks)
	planner := diet.NewPlanner(gemini, diet.NewPetFoodClient())

	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		store:  vectorStore,
	}
	s.app = newApp(cfg, vectorStore, gemini, gemini, ag, planner)
	return s, nil
}

// newApp builds the fiber app with all routes. Split out so handler tests
// can assemble an app over fakes.
func newApp(
	cfg *config.AppConfig,
	vectorStore store.VectorStorer,
	embedder model.EmbedderInterface,
	vision model.VisionInterface,
	ag *agent.Agent,
	planner *diet.Planner,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	var (
		checkHandler   = api.NewCheckHandler()
		requestHandler = api.NewRequestHandler(vectorStore, embedder, ag, cfg.Retriever.TopK)
		imageHandler   = api.NewImageHandler(vision)
		dietHandler    = api.NewDietHandler(planner)
	)

	app.Get("/check/healthy", checkHandler.HandleHealthy)
	app.Post("/generate_answer", requestHandler.HandleGenerateAnswer)
	app.Post("/analyze-image/", imageHandler.HandleAnalyzeImage)
	app.Post("/generate-diet-plan", dietHandler.HandleGenerateDietPlan)

	return app
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "addr", s.cfg.Server.Addr)
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop() {
	if err := s.app.Shutdown(); err != nil {
		s.logger.Error("error shutting down server", "error", err)
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing vector store", "error", err)
	}
	s.logger.Info("server stopped")
}
