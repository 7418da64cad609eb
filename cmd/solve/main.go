// Command solve builds routes for a single Solomon instance file and writes
// customer.json, distance.json, and output.json to the output directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"insertion-route-service/internal/adapters/filestore"
	"insertion-route-service/internal/adapters/instance"
	"insertion-route-service/internal/config"
	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/platform/obs"
	"insertion-route-service/internal/services"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	p, logLevel, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if err := obs.SetupLogger(config.Get("ENVIRONMENT", "development"), logLevel); err != nil {
		return err
	}

	in, err := instance.LoadSolomonFile(p.Instance)
	if err != nil {
		return err
	}

	store, err := filestore.New(p.OutputDir)
	if err != nil {
		return err
	}
	if err := store.WriteCustomers(in.Customers); err != nil {
		return err
	}
	if err := store.WriteDistances(in.Distances); err != nil {
		return err
	}

	// Construction reads back the persisted files so the JSON inputs are
	// exactly what was routed.
	if in.Customers, err = store.ReadCustomers(); err != nil {
		return err
	}
	if in.Distances, err = store.ReadDistances(); err != nil {
		return err
	}

	fleet := p.Fleet
	if p.InstanceFleet {
		fleet = domain.FleetConfig{VehicleCapacity: in.VehicleCapacity, VehicleLimit: in.VehicleNumber}
	}

	opts := services.ConstructorOptions{Workers: p.Workers}
	if p.ShowDiagnostics {
		opts.Observer = services.LogObserver{Logger: log.Logger}
	}

	log.Info().
		Str("instance", in.Name).
		Int("customers", len(in.Customers)-1).
		Float64("vehicle_capacity", fleet.VehicleCapacity).
		Int("vehicle_limit", fleet.VehicleLimit).
		Msg("constructing routes")

	sol, err := services.Solve(ctx, in, fleet, opts)
	if err != nil {
		return err
	}
	if err := store.WriteSolution(sol); err != nil {
		return err
	}

	log.Info().
		Int("vehicles", sol.Summary.NumberOfUsedVehicles).
		Ints("unvisited", sol.Summary.UnvisitedNodes).
		Str("output", store.Path(filestore.OutputFile)).
		Msg("solution written")
	return nil
}

// parseFlags builds the run profile: defaults, then the -profile file if
// given, then any flag set explicitly on the command line.
func parseFlags(args []string, stderr io.Writer) (config.Profile, string, error) {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.DefaultProfile()
	profilePath := fs.String("profile", "", "YAML run profile")
	instancePath := fs.String("instance", "", "Solomon instance file")
	outDir := fs.String("out", def.OutputDir, "directory for customer.json, distance.json, and output.json")
	capacity := fs.Float64("capacity", def.Fleet.VehicleCapacity, "vehicle capacity (total demand must stay below it)")
	limit := fs.Int("limit", def.Fleet.VehicleLimit, "maximum number of vehicles")
	instanceFleet := fs.Bool("instance-fleet", def.InstanceFleet, "take capacity and vehicle count from the instance header")
	diagnostics := fs.Bool("diagnostics", def.ShowDiagnostics, "log every rejected candidate route")
	workers := fs.Int("workers", def.Workers, "parallel candidate evaluation workers")
	logLevel := fs.String("log-level", "info", "log level (debug shows every insertion)")

	if err := fs.Parse(args); err != nil {
		return config.Profile{}, "", err
	}

	p := def
	if *profilePath != "" {
		loaded, err := config.LoadProfile(*profilePath)
		if err != nil {
			return config.Profile{}, "", err
		}
		p = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "instance":
			p.Instance = *instancePath
		case "out":
			p.OutputDir = *outDir
		case "capacity":
			p.Fleet.VehicleCapacity = *capacity
		case "limit":
			p.Fleet.VehicleLimit = *limit
		case "instance-fleet":
			p.InstanceFleet = *instanceFleet
		case "diagnostics":
			p.ShowDiagnostics = *diagnostics
		case "workers":
			p.Workers = *workers
		}
	})

	if p.Instance == "" {
		return config.Profile{}, "", errors.New("an instance file is required (-instance or profile key instance)")
	}
	if err := p.Validate(); err != nil {
		return config.Profile{}, "", fmt.Errorf("invalid run profile: %w", err)
	}
	return p, *logLevel, nil
}
