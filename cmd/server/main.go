package main

import (
	"fmt"

	"github.com/pkalugin/ironlog/internal/config"
	handlerhttp "github.com/pkalugin/ironlog/internal/handler/http"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/server"
	"github.com/pkalugin/ironlog/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("ironlog-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	handler := handlerhttp.NewHandler(cfg, store.NewDocumentStore(), log)
	srv := server.NewServer(handler.Init(), cfg, log)

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
