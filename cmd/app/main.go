package main

import (
	"trattoria/config"
	"trattoria/di"
	"trattoria/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
