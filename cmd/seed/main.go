// Command seed fills an empty catalog with the sample phone lineup.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"product-service/application/commands"
	"product-service/domain/catalog"
	"product-service/infrastructure/config"
	"product-service/infrastructure/di"
)

type sample struct {
	title       string
	description string
	price       float64
	count       float64
}

var samples = []sample{
	{"Apple iPhone 13 Pro", "Latest iPhone with A15 Bionic chip and Pro camera system", 999, 25},
	{"Samsung Galaxy S21", "Flagship Android phone with 120Hz display and 8K video", 799, 32},
	{"Google Pixel 6", "Google Pixel with advanced AI features and great camera", 599, 15},
	{"OnePlus 9 Pro", "Fast charging flagship with Hasselblad camera partnership", 899, 18},
	{"Xiaomi Mi 11", "Powerful Snapdragon processor with 108MP camera", 749, 27},
}

func main() {
	force := flag.Bool("force", false, "seed even when the catalog already has products")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Shutdown(context.Background())

	logger := container.Logger

	if !*force {
		existing, err := container.RecordStore.ScanAll(ctx, container.Collections.Products)
		if err != nil {
			logger.Fatal("Failed to read catalog", zap.Error(err))
		}
		if len(existing) > 0 {
			logger.Info("Catalog already has products, skipping", zap.Int("count", len(existing)))
			return
		}
	}

	for _, s := range samples {
		description := s.description
		count := catalog.Number(s.count)
		result, err := container.CommandBus.Send(ctx, commands.CreateProductCommand{
			Submission: catalog.Submission{
				Title:       s.title,
				Description: &description,
				Price:       catalog.Number(s.price),
				Count:       &count,
			},
		})
		if err != nil {
			logger.Fatal("Failed to seed product", zap.String("title", s.title), zap.Error(err))
		}
		created := result.(*catalog.CreatedProduct)
		logger.Info("Seeded product",
			zap.String("id", created.ID),
			zap.String("title", created.Title),
			zap.Int("count", created.Count),
		)
	}
}
