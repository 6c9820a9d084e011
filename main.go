package main

import (
	"meetwise/core/logger"
	"meetwise/core/server"
)

// @title Meetwise API
// @version 1.0
// @description Multi-participant meeting slot search and scheduling backend

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
