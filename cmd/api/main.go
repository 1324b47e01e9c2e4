package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/barbera-app/barbera-api/internal/config"
	dbpkg "github.com/barbera-app/barbera-api/internal/db"
	"github.com/barbera-app/barbera-api/internal/routes"
)

func main() {

	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, rdb)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
