// Command migrate title-cases every product name in a single transaction.
// The API cache is not flushed; running servers pick up the new names once
// their cached entries expire.
package main

import (
	"context"
	"os"

	"github.com/cloudmarket/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/cloudmarket/marketplace-api/internal/infrastructure/db/mongo"
	"github.com/cloudmarket/marketplace-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	log := logger.Init(logger.Options{Pretty: true, Service: "marketplace-migrate"})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return 1
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	n, err := mongodb.NewProductRepository(db).TitleCaseNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("migration failed, transaction aborted")
		return 1
	}

	log.Info().Int64("modified", n).Msg("product names title-cased")
	return 0
}
