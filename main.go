package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"fruitshop/m/internal/api"
	"fruitshop/m/internal/config"
	"fruitshop/m/internal/database"
	"fruitshop/m/internal/migrations"
	"fruitshop/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.EnsureBossAccount(db, os.Getenv("BOSS_EMAIL"), os.Getenv("BOSS_PASSWORD"))

	handler := api.New(db, cfg.Secret, cfg.GuardWastageCreate)

	log.Printf("fruit-shop server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
