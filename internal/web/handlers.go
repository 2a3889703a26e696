package web

import (
	"encoding/base64"
	"math"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aioreal/backend/internal/game"
	"github.com/aioreal/backend/internal/pool"
)

func (s *Server) getCountries(c *gin.Context) {
	s.mu.Lock()
	now := s.clock.Now()
	if !s.countryCache.Stale(now) {
		list := s.countryCache.Value
		s.mu.Unlock()
		c.Header("Cache-Control", "public, max-age=3600, stale-while-revalidate=7200")
		c.JSON(http.StatusOK, list)
		return
	}
	s.mu.Unlock()

	list, err := s.countries.ListCountries(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch countries")
		c.JSON(http.StatusInternalServerError, []Country{})
		return
	}

	s.mu.Lock()
	s.countryCache = pool.Fresh(list, now, countryTTL)
	s.mu.Unlock()

	c.Header("Cache-Control", "public, max-age=3600, stale-while-revalidate=7200")
	c.JSON(http.StatusOK, list)
}

func (s *Server) getImages(c *gin.Context) {
	deck, err := s.deck.Deck(c.Request.Context(), s.cfg.Rounds, s.cfg.PerClass)
	if err != nil {
		log.Error().Err(err).Msg("failed to assemble image deck")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": deck})
}

func (s *Server) getLeaderboard(c *gin.Context) {
	s.mu.Lock()
	now := s.clock.Now()
	if !s.leaderboardCache.Stale(now) {
		list := s.leaderboardCache.Value
		s.mu.Unlock()
		c.Header("Cache-Control", "public, max-age=3, stale-while-revalidate=5")
		c.JSON(http.StatusOK, gin.H{"leaderboard": list})
		return
	}
	s.mu.Unlock()

	list, err := s.scores.Leaderboard(c.Request.Context(), leaderboardLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch leaderboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	s.mu.Lock()
	s.leaderboardCache = pool.Fresh(list, now, leaderboardTTL)
	s.mu.Unlock()

	c.Header("Cache-Control", "public, max-age=3, stale-while-revalidate=5")
	c.JSON(http.StatusOK, gin.H{"leaderboard": list})
}

func (s *Server) getGallery(c *gin.Context) {
	items, err := s.gallery.ListGallery(c.Request.Context(), galleryLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch gallery")
		c.JSON(http.StatusInternalServerError, []GalleryItem{})
		return
	}
	if items == nil {
		items = []GalleryItem{}
	}
	c.JSON(http.StatusOK, items)
}

type submitRequest struct {
	Username     string  `json:"username"`
	Country      string  `json:"country"`
	TotalScore   *int    `json:"totalScore"`
	CorrectCount int     `json:"correctCount"`
	TotalImages  int     `json:"totalImages"`
	Accuracy     float64 `json:"accuracy"`
	AvgTime      float64 `json:"avgTime"`
}

func (s *Server) postSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.TotalScore == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	sum := game.Summary{
		TotalScore:   *req.TotalScore,
		CorrectCount: req.CorrectCount,
		TotalImages:  req.TotalImages,
		Accuracy:     req.Accuracy,
		AvgTime:      req.AvgTime,
	}
	res, err := s.scores.Submit(c.Request.Context(), req.Username, req.Country, sum)
	if err != nil {
		log.Error().Err(err).Msg("failed to submit score")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit score"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"playerId": res.PlayerID,
		"scoreId":  res.ScoreID,
		"rank":     res.Rank,
	})
}

var dataURLRe = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,(.+)$`)

type uploadCardRequest struct {
	Image    string  `json:"image"`
	Filename string  `json:"filename"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
	Country  string  `json:"country"`
}

func (s *Server) postUploadCard(c *gin.Context) {
	var req uploadCardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}
	if req.Image == "" || req.Filename == "" || strings.TrimSpace(req.Username) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	m := dataURLRe.FindStringSubmatch(req.Image)
	if m == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
		return
	}
	contentType := "image/" + m[1]
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
		return
	}

	// Strip any path components from the client-supplied filename.
	filename := path.Base(req.Filename)
	url, err := s.cards.SaveCard(filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to store card")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload card"})
		return
	}

	username := req.Username
	if len(username) > 50 {
		username = username[:50]
	}
	country := req.Country
	if len(country) > 100 {
		country = country[:100]
	}
	if _, err := s.gallery.CreateGalleryItem(c.Request.Context(), url, username, int(math.Round(req.Score)), country); err != nil {
		log.Error().Err(err).Msg("failed to record gallery item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
