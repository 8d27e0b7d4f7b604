package main

import (
	"log"

	"github.com/nimbusgrid/platform-go/internal/api/middleware"
	"github.com/nimbusgrid/platform-go/internal/api/routes"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/config"
	"github.com/nimbusgrid/platform-go/internal/db"
	"github.com/nimbusgrid/platform-go/internal/repository"
)

// @title NimbusGrid Platform API
// @version 1.0
// @description Compute rental platform: projects, jobs, monitoring, pricing and account management.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	middleware.Init()

	gdb, err := db.Init()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repos := repository.New(gdb)
	services := application.New(repos)
	router := routes.SetupRouter(services)

	log.Printf("listening on :%s", config.ServerPort)
	if err := router.Run(":" + config.ServerPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
