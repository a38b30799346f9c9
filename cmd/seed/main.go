package main

import (
	"context"
	"log"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/utils"
)

type seedDoc struct {
	Type string
	Key  string
	Doc  content.Document
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := content.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore(context.Background())

	docs := []seedDoc{
		{Type: content.TypeVideo, Key: "Brand Story: Coffee Roasters", Doc: content.VideoInput{
			Title:       "Brand Story: Coffee Roasters",
			Description: "A three minute brand film, **colour graded** in DaVinci Resolve.",
			YouTubeID:   "aqz-KE-bpKQ",
			Category:    content.CategoryLong,
		}.Document()},
		{Type: content.TypeVideo, Key: "Wedding Highlights", Doc: content.VideoInput{
			Title:       "Wedding Highlights",
			Description: "Narrative-driven highlight edit with sound design.",
			YouTubeID:   "ScMzIvxBSi4",
			Category:    content.CategoryLong,
		}.Document()},
		{Type: content.TypeVideo, Key: "Sneaker Drop Reel", Doc: content.VideoInput{
			Title:     "Sneaker Drop Reel",
			YouTubeID: "jNQXAC9IVRw",
			Category:  content.CategoryShort,
		}.Document()},
		{Type: content.TypeClient, Key: "Northwind Studio", Doc: content.ClientInput{
			Name:        "Northwind Studio",
			Description: "Music videos and artist promos.",
		}.Document()},
		{Type: content.TypeClient, Key: "Kasi Eats", Doc: content.ClientInput{
			Name: "Kasi Eats",
		}.Document()},
		{Type: content.TypeCertificate, Key: "DaVinci Resolve Editing", Doc: content.Document{
			"title":       "DaVinci Resolve Editing",
			"issuer":      "Blackmagic Design",
			"description": "Certified editor track.",
			"imageUrl":    "https://placehold.co/800x600?text=Resolve+Editing",
			"issuedAt":    "2024-03-15",
		}},
	}

	for _, d := range docs {
		id := d.Type + "." + utils.Slugify(d.Key)
		if err := store.CreateIfMissing(ctx, d.Type, id, d.Doc); err != nil {
			log.Fatalf("seed error for %s: %v", id, err)
		}
		log.Printf("seed %s: ok", id)
	}

	log.Println("seed completed")
}
