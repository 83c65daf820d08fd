package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/wfs/skijoring/internal/config"
	"github.com/wfs/skijoring/internal/db"
	"github.com/wfs/skijoring/internal/handlers"
	svc "github.com/wfs/skijoring/internal/services"
	"github.com/wfs/skijoring/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	if cfg.SessionSecret == config.DevSessionSecret {
		log.Println("WARNING: SESSION_SECRET not set, using the dev default")
	}
	handlers.SetSessionSecret(cfg.SessionSecret)

	if err := db.Init(cfg.DBPath); err != nil {
		log.Fatalf("db init: %v", err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := svc.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
	}

	r := web.Router()

	log.Printf("WFS registration portal listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
