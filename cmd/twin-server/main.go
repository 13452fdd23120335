package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vitatwin/go-twin/internal/config"
	"github.com/vitatwin/go-twin/internal/log"
	"github.com/vitatwin/go-twin/pkg/engine"
	"github.com/vitatwin/go-twin/pkg/web"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	port := flag.String("port", config.Port(), "HTTP port")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	server := web.NewServer(*port, engine.Options{
		IdleAnimations: config.IdleAnimations(),
	})
	server.StartAsync()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
