package main

import (
	"context"
	"fmt"

	"github.com/bookswap/bookswap/pkg/config"
	"github.com/bookswap/bookswap/pkg/database"
	"github.com/bookswap/bookswap/pkg/migrations"
	"github.com/bookswap/bookswap/pkg/seed"
	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	var opts struct {
		KeepExisting bool `short:"k" long:"keep-existing" description:"Don't clear the database before seeding"`
		Migrate      bool `short:"m" long:"migrate" description:"Run pending migrations first"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if opts.Migrate {
		if _, err := migrations.BringUpToDate(ctx, db); err != nil {
			log.Err(err).Fatal("migrations error")
		}
	}

	result, err := seed.Run(ctx, db, seed.Options{KeepExisting: opts.KeepExisting})
	if err != nil {
		log.Err(err).Fatal("seed error")
	}
	fmt.Printf("Seeded %d authors, %d genres and %d users\n", result.Authors, result.Genres, result.Users)
}
