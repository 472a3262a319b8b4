package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"petcare/chunker"
	"petcare/config"
	"petcare/loader/service"
	"petcare/model"
	"petcare/store"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("error loading config: ", err)
	}

	ctx := context.Background()

	gemini, err := model.NewGemini(ctx, cfg.APIKey(), cfg.Model, cfg.Store.Dimension)
	if err != nil {
		log.Fatal("error initializing Gemini client: ", err)
	}

	vectorStore, err := store.NewChromemStore(cfg.Store.Path, cfg.Store.Collection, gemini)
	if err != nil {
		log.Fatal("error opening vector store: ", err)
	}
	defer vectorStore.Close()

	ch := chunker.New(gemini,
		chunker.WithMinChunkSize(cfg.Chunker.MinChunkSize),
		chunker.WithBreakpointPercentile(cfg.Chunker.BreakpointPercentile),
	)

	if err := service.New(cfg.Loader, vectorStore, gemini, ch).Run(ctx); err != nil {
		log.Fatal("ingestion run failed: ", err)
	}
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}
