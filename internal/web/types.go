package web

import (
	"context"
	"time"

	"github.com/aioreal/backend/internal/game"
)

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	Username     string    `json:"username"`
	Country      *string   `json:"country"`
	Score        int       `json:"score"`
	Accuracy     float64   `json:"accuracy"`
	CorrectCount int       `json:"correctCount"`
	TotalImages  int       `json:"totalImages"`
	AvgTime      *float64  `json:"avgTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

type GalleryItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitResult is the persisted identity of one score submission plus its
// point-in-time leaderboard rank.
type SubmitResult struct {
	PlayerID string `json:"playerId"`
	ScoreID  string `json:"scoreId"`
	Rank     int    `json:"rank"`
}

// The handlers accept these narrow interfaces; the postgres repositories
// satisfy them and tests swap in in-memory fakes.

type CountrySource interface {
	ListCountries(ctx context.Context) ([]Country, error)
}

type ScoreStore interface {
	Submit(ctx context.Context, username, country string, sum game.Summary) (SubmitResult, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type GalleryStore interface {
	ListGallery(ctx context.Context, limit int) ([]GalleryItem, error)
	CreateGalleryItem(ctx context.Context, url, username string, score int, country string) (GalleryItem, error)
}

// DeckSource supplies a balanced shuffled deck for the public images
// endpoint.
type DeckSource interface {
	Deck(ctx context.Context, rounds, perClass int) ([]game.Image, error)
}

// CardStore persists exported result-card images and returns their public
// URL.
type CardStore interface {
	SaveCard(filename, contentType string, data []byte) (string, error)
}
