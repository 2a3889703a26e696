package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/aioreal/backend/internal/config"
	"github.com/aioreal/backend/internal/repository/postgres"
)

type seedImage struct {
	URL         string
	Category    string
	Description string
	Source      string
}

var aiImages = []seedImage{
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/277c0849-185c-4630-8a8e-843549fc9e79.jpg", Category: "gaming", Description: "AI gaming scene - Valorant"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/b621b729-ff94-496c-8156-684607dd007d.jpg", Category: "gaming", Description: "AI gaming scene - Valorant 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/7398cc83-b013-4f21-ad9a-6fa3ac69e351.jpg", Category: "gaming", Description: "AI gaming scene - League of Legends"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/ee09bd43-c058-403f-b8c1-cf713a35bf58.jpg", Category: "gaming", Description: "AI gaming scene - League of Legends 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/ae190ee1-4e06-4a68-a438-582e9323d5b6.jpg", Category: "esports", Description: "AI esports event"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/07e95886-079c-405a-807b-e21c9bd3cc03.jpg", Category: "esports", Description: "AI esports event 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/0dd36f0e-378e-47e2-8f26-522c9b7effb9.jpg", Category: "portrait", Description: "AI portrait - woman face"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/bd0663f2-c30c-4dab-ba0c-6a6516dd7e8b.jpg", Category: "portrait", Description: "AI portrait - woman face 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/c9af094c-0430-40cc-8885-dde4b20a88e4.jpg", Category: "people", Description: "AI romantic couple"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/8664a3e4-abb6-43d7-8eab-a662d012238e.jpg", Category: "people", Description: "AI romantic couple 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/8eba85f9-09a9-4055-ac12-9eecbfc75366.jpg", Category: "nature", Description: "AI rose flower"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/66f5038c-a6da-4596-8e73-dbf516a8bee9.jpg", Category: "nature", Description: "AI rose flower 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/47695132-b899-47bf-8743-f1fd101b0acd.jpg", Category: "architecture", Description: "AI modern house"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/25b79bac-bb03-4323-95db-a5cfd9d30a24.jpg", Category: "military", Description: "AI soldier"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/8ee64084-f924-40aa-8c9d-09b84e22830d.jpg", Category: "military", Description: "AI soldier 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/68c10a92-85d6-4b4f-8ca3-8865475efa80.jpg", Category: "luxury", Description: "AI private jet interior"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/aea71934-316a-45d4-a667-992765ea37a7.jpg", Category: "luxury", Description: "AI private jet interior 2"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/48bfbec2-b6a8-46b4-9228-e4c69c6d25fd.jpg", Category: "nature", Description: "AI forest scene"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/ai_image/61387c12-bff3-45d9-8d37-cfedd92c6812.jpg", Category: "nature", Description: "AI forest scene 2"},
}

var realImages = []seedImage{
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/bride-8358737_1920.jpg", Category: "people", Source: "Pixabay - OlcayErtem"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/bride-9924693_1920.jpg", Category: "people", Source: "Pixabay - OlcayErtem"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/balinese-8097542_1920.jpg", Category: "people", Source: "Pixabay - Deddy_Sunarto"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/woman-5303971_1280.jpg", Category: "people", Source: "Pixabay - Tranvanquyet"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/contrast-5073265_1280.jpg", Category: "architecture", Source: "Pixabay - fietzfotos"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/lubeck-travemunde-5052446_1920.jpg", Category: "architecture", Source: "Pixabay - Kor_el_ya"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/poppies-5392907_1920.jpg", Category: "nature", Source: "Pixabay - thegermankid"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/flower-800752_1920.jpg", Category: "nature", Source: "Pixabay - TanteTati"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/gameboy-1143675_1920.jpg", Category: "gaming", Source: "Pixabay - Peggy_Marco"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/photo-1618193139062-2c5bf4f935b7.jpg", Category: "gaming", Source: "Unsplash - Erik Mclean"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/photo-1649425371492-78dc23abb424.jpg", Category: "gaming", Source: "Unsplash - Eugene Chystiakov"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/man-4207514_1920.jpg", Category: "military", Source: "Pixabay - Sammy-Sander"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/knight-9765068_1920.jpg", Category: "military", Source: "Pixabay - Raman_Spirydonau"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/woods-7661735_1920.jpg", Category: "nature", Source: "Pixabay - Strandkind_Muecke"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/forest-220719_1920.jpg", Category: "nature", Source: "Pixabay - DeltaWorks"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/food-1050813_1920.jpg", Category: "food", Source: "Pixabay - karriezhu"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/food-5981232_1920.jpg", Category: "food", Source: "Pixabay - romjanaly"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/owl-10077647_1920.jpg", Category: "nature", Source: "Pixabay - Nick4Fun"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/vietnam-6947339_1920.jpg", Category: "people", Source: "Pixabay - Chuotanhls"},
	{URL: "https://s3.us-east-1.amazonaws.com/aiorreal.fun/not_ai_image/tree-9913930_1920.jpg", Category: "nature", Source: "Pixabay - wal_172619_II"},
}

type seedCountry struct {
	Name string
	Code string
	Flag string
}

var seedCountries = []seedCountry{
	{"Brazil", "BR", "🇧🇷"},
	{"Canada", "CA", "🇨🇦"},
	{"China", "CN", "🇨🇳"},
	{"France", "FR", "🇫🇷"},
	{"Germany", "DE", "🇩🇪"},
	{"India", "IN", "🇮🇳"},
	{"Indonesia", "ID", "🇮🇩"},
	{"Italy", "IT", "🇮🇹"},
	{"Japan", "JP", "🇯🇵"},
	{"Mexico", "MX", "🇲🇽"},
	{"Netherlands", "NL", "🇳🇱"},
	{"Poland", "PL", "🇵🇱"},
	{"Russia", "RU", "🇷🇺"},
	{"South Korea", "KR", "🇰🇷"},
	{"Spain", "ES", "🇪🇸"},
	{"Turkey", "TR", "🇹🇷"},
	{"United Kingdom", "GB", "🇬🇧"},
	{"United States", "US", "🇺🇸"},
	{"Vietnam", "VN", "🇻🇳"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	log.Println("Seeding database...")

	images := postgres.NewImageRepository(db)
	if err := images.DeleteAll(ctx); err != nil {
		log.Fatalf("clear images: %v", err)
	}
	for _, img := range aiImages {
		if _, err := images.Create(ctx, img.URL, true, img.Category, img.Description, img.Source); err != nil {
			log.Fatalf("seed ai image: %v", err)
		}
	}
	for _, img := range realImages {
		if _, err := images.Create(ctx, img.URL, false, img.Category, img.Description, img.Source); err != nil {
			log.Fatalf("seed real image: %v", err)
		}
	}

	countries := postgres.NewCountryRepository(db)
	for _, c := range seedCountries {
		if err := countries.Upsert(ctx, c.Name, c.Code, c.Flag); err != nil {
			log.Fatalf("seed country %s: %v", c.Code, err)
		}
	}

	count, err := images.Count(ctx)
	if err != nil {
		log.Fatalf("count images: %v", err)
	}
	log.Printf("Seeded %d images and %d countries", count, len(seedCountries))
}
