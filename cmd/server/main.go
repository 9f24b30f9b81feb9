package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"buzzer/internal/arbiter"
	"buzzer/internal/config"
	"buzzer/internal/db"
	"buzzer/internal/server"
	"buzzer/internal/store"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if cfg.AdminPIN == "" {
		log.Fatal("ADMIN_PIN is not set")
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	var roundStore store.RoundStore
	if os.Getenv("DATABASE_URL") != "" {
		conn, err := db.Open()
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			log.Fatalf("failed to access database pool: %v", err)
		}
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
		roundStore = store.NewGormStore(conn)
	} else {
		log.Println("DATABASE_URL not set; using in-memory round store")
		roundStore = store.NewMemoryStore()
	}

	arb := arbiter.New(roundStore, cfg.AdminPIN)
	srv := server.New(arb, cfg)
	log.Printf("buzzer server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
