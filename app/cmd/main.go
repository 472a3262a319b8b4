package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"petcare/app/server"
	"petcare/config"
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

	s, err := server.NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatal("error initializing server: ", err)
	}

	go func() {
		if err := s.Run(); err != nil {
			log.Fatal("error starting server: ", err)
		}
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	log.Println("Received shutdown signal, shutting down server...")
	s.Stop()
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}
