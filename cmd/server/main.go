package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/reading-room-manager/internal/config"
	"github.com/iliyamo/reading-room-manager/internal/database"
	"github.com/iliyamo/reading-room-manager/internal/handler"
	"github.com/iliyamo/reading-room-manager/internal/queue"
	"github.com/iliyamo/reading-room-manager/internal/repository"
	"github.com/iliyamo/reading-room-manager/internal/router"
	alertpub "github.com/iliyamo/reading-room-manager/internal/service"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	// Optional Redis; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer that records delivered fee alerts.
	go func() {
		if err := queue.StartAlertConsumer(); err != nil {
			log.Printf("alert consumer stopped: %v", err)
		}
	}()

	students := repository.NewStudentRepo(db)
	h := handler.NewStudentHandler(students, alertpub.Publisher{}, nil)

	e := echo.New()
	router.RegisterRoutes(e, rdb)
	router.RegisterStudents(e, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
