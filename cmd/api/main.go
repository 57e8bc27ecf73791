package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/spaceqrpro/qrmenu-api/internal/config"
	"github.com/spaceqrpro/qrmenu-api/internal/db"
	"github.com/spaceqrpro/qrmenu-api/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	r := gin.Default()

	routes.RegisterRoutes(r, database, cfg)

	log.Println("🚀 Server running on", cfg.Addr())

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
