package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"insertion-route-service/internal/adapters/instance"
	"insertion-route-service/internal/adapters/repositories"
	"insertion-route-service/internal/config"
	"insertion-route-service/internal/platform/db"
	"insertion-route-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := obs.SetupLogger(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	dir := flag.String("dir", cfg.InstancesDir, "directory of Solomon instance files to import")
	file := flag.String("file", "", "import a single Solomon instance file instead of -dir")
	schemaOnly := flag.Bool("schema-only", false, "create the schema and exit")
	flag.Parse()

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer conn.Close()

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")

	if *schemaOnly {
		return
	}

	paths := []string{*file}
	if *file == "" {
		if paths, err = instanceFiles(*dir); err != nil {
			log.Fatal().Err(err).Msg("cannot list instance files")
		}
	}

	dialect := repositories.Dialect(cfg.Database.Driver)
	if err := importInstances(ctx, conn, dialect, paths); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().Int("instances", len(paths)).Msg("import complete")
}

// instanceFiles lists the .txt files of a directory in name order.
func instanceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("instance files: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

func importInstances(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, paths []string) error {
	repo := repositories.NewSQLInstanceRepository(conn, dialect)

	for _, p := range paths {
		in, err := instance.LoadSolomonFile(p)
		if err != nil {
			return fmt.Errorf("import instances: %w", err)
		}
		if err := repo.SaveInstance(ctx, in); err != nil {
			return fmt.Errorf("import instances: %w", err)
		}
		log.Info().Str("instance", in.Name).Int("customers", len(in.Customers)).Msg("instance imported")
	}
	return nil
}
