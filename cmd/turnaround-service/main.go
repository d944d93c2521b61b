package main

import (
	"fmt"
	"os"
	"time"

	"github.com/isisteel/yard-turnaround/internal/auth"
	"github.com/isisteel/yard-turnaround/internal/config"
	"github.com/isisteel/yard-turnaround/internal/engine"
	"github.com/isisteel/yard-turnaround/internal/excel"
	httphandler "github.com/isisteel/yard-turnaround/internal/http"
	"github.com/isisteel/yard-turnaround/internal/http/middleware"
	"github.com/isisteel/yard-turnaround/internal/loader"
	"github.com/isisteel/yard-turnaround/internal/logger"
	"github.com/isisteel/yard-turnaround/internal/pdf"
	"github.com/isisteel/yard-turnaround/internal/processor"
	"github.com/isisteel/yard-turnaround/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	loc, err := time.LoadLocation(cfg.Yard.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Yard.Timezone).Msg("failed to load yard timezone")
	}

	sheets := loader.New(cfg.Sheets, log)
	proc := processor.New(loc)
	eng := engine.New(loc)

	turnaroundService := service.NewTurnaroundService(
		sheets,
		proc,
		eng,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		cfg.Yard.Products,
		log,
	)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(turnaroundService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("timezone", cfg.Yard.Timezone).Msg("starting turnaround service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
