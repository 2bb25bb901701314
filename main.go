package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var config_file string
	root := &cobra.Command{
		Use:           "go-trip",
		Short:         "Trip planning service on OSM road graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&config_file, "config", "c", "./config.yml", "path to the config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Load (or build) the graphs and start the http service",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := ReadConfig(config_file)
			if err != nil {
				return err
			}
			return RunServer(config)
		},
	}
	prepare := &cobra.Command{
		Use:   "prepare",
		Short: "Parse the osm source and build all configured profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := ReadConfig(config_file)
			if err != nil {
				return err
			}
			writer := SetupLogging(config.Logging)
			defer writer.Close()

			config.BuildGraphs = true
			_, err = NewRoutingManager(config)
			return err
		},
	}
	root.AddCommand(serve, prepare)
	return root
}

func RunServer(config Config) error {
	writer := SetupLogging(config.Logging)
	defer writer.Close()

	manager, err := NewRoutingManager(config)
	if err != nil {
		return err
	}

	pool, err := ants.NewPool(config.Services.MaxWorkers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()
	WORKER_POOL = pool

	app := http.NewServeMux()
	MapRoutes(app, manager)

	slog.Info("Listening on " + config.Services.Address)
	return http.ListenAndServe(config.Services.Address, app)
}

func MapRoutes(app *http.ServeMux, manager *RoutingManager) {
	MapPost(app, "/v1/trip", func(req TripRequest) Result {
		return HandleTripRequest(manager, req)
	})
	MapPost(app, "/v1/table", func(req TableRequest) Result {
		return HandleTableRequest(manager, req)
	})
	MapPost(app, "/v1/route", func(req RouteRequest) Result {
		return HandleRouteRequest(manager, req)
	})
	MapGet(app, "/v1/nearest", func(req NearestRequest) Result {
		return HandleNearestRequest(manager, req)
	})
	MapGet(app, "/v1/health", func(none) Result {
		return OK("ok")
	})
	app.Handle("/metrics", promhttp.Handler())
}
