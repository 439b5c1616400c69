package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/seva/shipper/server/internal/api"
	"github.com/seva/shipper/server/internal/auth"
	"github.com/seva/shipper/server/internal/config"
)

func main() {
	_ = godotenv.Load(".env")
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[Shipper] %v", err)
	}
	handler := api.NewHandler(cfg)
	router := api.NewRouter(handler, auth.SharedSecret(cfg.SecretKey))

	log.Printf("Shipper server listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}
