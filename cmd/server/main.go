package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/aioreal/backend/internal/config"
	"github.com/aioreal/backend/internal/game"
	"github.com/aioreal/backend/internal/pool"
	"github.com/aioreal/backend/internal/repository/postgres"
	"github.com/aioreal/backend/internal/web"
	"github.com/aioreal/backend/internal/ws"
	staticserver "github.com/aioreal/backend/static"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`AI or Real? - image classification game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT              Port to listen on (default: 8080)
  PUBLIC_BASE_URL   Base URL for generated card links (default: http://localhost:8080)
  CARDS_DIR         Directory for uploaded result cards (default: ./data/cards)
  EXPORT_ENABLED    Export finished sessions to file (default: true)
  EXPORT_FILE       Path of the results export file (default: ./aioreal-results.txt)
  DB_HOST           Postgres host (default: localhost)
  DB_PORT           Postgres port (default: 5432)
  DB_USER           Postgres user (default: aioreal)
  DB_PASSWORD       Postgres password
  DB_NAME           Postgres database (default: aioreal)
  DB_SSLMODE        Postgres sslmode (default: disable)

Visit http://localhost:8080 after starting the server.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("aioreal %s\n", version)
		return
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()

	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Database
	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	zerologlog.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("database ready")

	images := postgres.NewImageRepository(db)
	countries := postgres.NewCountryRepository(db)
	scores := postgres.NewScoreRepository(db)
	gallery := postgres.NewGalleryRepository(db)

	clock := clockwork.NewRealClock()
	gameCfg := game.DefaultConfig()
	deck := pool.NewProvider(images, clock, 60*time.Second)

	// Live game loop over Socket.IO
	manager := game.NewManager(gameCfg, clock, deck, scores)
	sock := ws.New(manager, cfg)
	io := sock.Mount(r)
	defer io.Close()

	// REST API
	cards := web.NewLocalCardStore(cfg.CardsDir, cfg.PublicBaseURL)
	api := web.NewServer(countries, scores, gallery, deck, cards, gameCfg, clock)
	api.Register(r)
	r.Static("/cards", cfg.CardsDir)

	// Serve frontend (if embedded build is present) for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
