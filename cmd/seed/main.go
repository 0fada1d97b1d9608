// Command seed loads the default users, products and offers into MongoDB.
//
// Usage:
//
//	seed [-no-clear]
//
// Existing users, products and offers are removed first unless -no-clear is set.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/cloudmarket/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/cloudmarket/marketplace-api/internal/infrastructure/db/mongo"
	"github.com/cloudmarket/marketplace-api/internal/seed"
	"github.com/cloudmarket/marketplace-api/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	noClear := fs.Bool("no-clear", false, "keep existing data")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	log := logger.Init(logger.Options{Pretty: true, Service: "marketplace-seed"})

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

	store := mongodb.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("index creation failed")
		return 1
	}

	f, err := seed.Default()
	if err != nil {
		log.Error().Err(err).Msg("invalid fixtures")
		return 1
	}

	_, err = seed.Run(ctx, seed.Repositories{
		Users:    store.Users,
		Products: store.Products,
		Offers:   store.Offers,
	}, f, seed.Options{Clear: !*noClear}, log)
	if err != nil {
		log.Error().Err(err).Msg("database seeding failed")
		return 1
	}

	log.Info().Msg("database seeding completed")
	return 0
}
