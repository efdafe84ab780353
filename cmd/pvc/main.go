package main // Entry point for the PVC cinema booking CLI

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/pvc-cinemas/pvc/internal/config"
	"github.com/pvc-cinemas/pvc/internal/repository"
	"github.com/pvc-cinemas/pvc/internal/service"
	"github.com/pvc-cinemas/pvc/internal/store"
)

func main() {
	envFile := flag.String("env-file", ".env", "environment file to load when present")
	dataDir := flag.String("data-dir", "", "override the data directory")
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load %s: %v", *envFile, err)
		}
	}
	cfg := config.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if cfg.SessionSecret == "" {
		// Sessions only need to outlive the process when the secret is
		// configured; otherwise a random per-process secret will do.
		cfg.SessionSecret = randomSecret()
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepo(st)
	admins := repository.NewAdminRepo(st)
	showings := repository.NewShowingRepo(st)
	bookings := repository.NewBookingRepo(st)

	app := &app{
		ctx:      ctx,
		cfg:      cfg,
		identity: service.NewIdentityService(cfg, st, users, admins, showings, bookings),
		booking:  service.NewBookingService(cfg, st, users, showings, bookings),
		in:       bufio.NewScanner(os.Stdin),
	}
	app.run()
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
