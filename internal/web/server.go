package web

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/aioreal/backend/internal/game"
	"github.com/aioreal/backend/internal/pool"
)

const (
	leaderboardLimit = 50
	galleryLimit     = 100

	countryTTL     = time.Hour
	leaderboardTTL = 3 * time.Second
)

// Server holds the REST API handlers and their read caches. Countries
// effectively never change; the leaderboard is polled by clients, so a short
// TTL keeps the database out of the hot path.
type Server struct {
	countries CountrySource
	scores    ScoreStore
	gallery   GalleryStore
	deck      DeckSource
	cards     CardStore
	cfg       game.Config
	clock     clockwork.Clock

	mu               sync.Mutex
	countryCache     pool.Entry[[]Country]
	leaderboardCache pool.Entry[[]LeaderboardEntry]
}

func NewServer(countries CountrySource, scores ScoreStore, gallery GalleryStore, deck DeckSource, cards CardStore, cfg game.Config, clock clockwork.Clock) *Server {
	return &Server{
		countries: countries,
		scores:    scores,
		gallery:   gallery,
		deck:      deck,
		cards:     cards,
		cfg:       cfg,
		clock:     clock,
	}
}

// Register mounts the API routes on the gin engine.
func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/countries", s.getCountries)
	api.GET("/images", s.getImages)
	api.GET("/leaderboard", s.getLeaderboard)
	api.GET("/gallery", s.getGallery)
	api.POST("/game/submit", s.postSubmit)
	api.POST("/upload-card", s.postUploadCard)
}
