package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/goliatone/go-backoffice/components/dashboard"
	"github.com/goliatone/go-backoffice/components/records"
	"github.com/goliatone/go-backoffice/pkg/config"
	"github.com/goliatone/go-backoffice/pkg/logging"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `short:"c" type:"path" help:"YAML configuration file (defaults to $BACKOFFICE_CONFIG)."`
	EnvFile string `name:"env-file" default:".env" help:"dotenv file with BACKOFFICE_* overrides."`
}

type cli struct {
	Globals

	Serve     serveCmd     `cmd:"" help:"Serve the backoffice JSON API."`
	Table     tableCmd     `cmd:"" help:"Print one page of a table."`
	Aggregate aggregateCmd `cmd:"" help:"Sum a table by month."`
	Explore   exploreCmd   `cmd:"" help:"Browse a table interactively."`
	Layout    layoutCmd    `cmd:"" help:"Create, edit and check dashboard layout files."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("backoffice"),
		kong.Description("Marketplace backoffice: tables, month aggregates and dashboard widgets."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&app.Globals)
	ctx.FatalIfErrorf(err)
}

type runtime struct {
	cfg        *config.Config
	logger     *zap.Logger
	backoffice *dashboard.Backoffice
}

func (g *Globals) loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{Path: g.Config, EnvFile: g.EnvFile})
}

// boot loads configuration, builds the dataset and wires the dashboard.
func (g *Globals) boot(ctx context.Context) (*runtime, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	bo, err := bootstrap(ctx, cfg, logger, time.Now)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, backoffice: bo}, nil
}

func bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger, now func() time.Time) (*dashboard.Backoffice, error) {
	ds := records.NewDataset(records.DatasetOptions{
		Seed:     cfg.Data.Seed,
		Now:      now(),
		Orders:   cfg.Data.Orders,
		Sellers:  cfg.Data.Sellers,
		Team:     cfg.Data.Team,
		Sessions: cfg.Data.Sessions,
	})
	var layout dashboard.LayoutSource
	if cfg.Dashboard.LayoutPath != "" {
		layout = dashboard.FileLayout{Path: cfg.Dashboard.LayoutPath}
	}
	bo, err := dashboard.Bootstrap(ctx, ds, dashboard.BootstrapOptions{
		Layout:    layout,
		Telemetry: dashboard.NewLoggerTelemetry(logger),
		ChartOptions: []dashboard.EChartsProviderOption{
			dashboard.WithChartTheme(cfg.Dashboard.ChartTheme),
			dashboard.WithChartHeight(cfg.Dashboard.ChartHeight),
			dashboard.WithChartAssetsHost(cfg.Dashboard.AssetsHost),
		},
		PageSize:       cfg.Tables.PageSize,
		FilterDebounce: cfg.Tables.FilterDebounce,
		Now:            now,
	})
	if err != nil {
		return nil, fmt.Errorf("backoffice: %w", err)
	}
	logger.Debug("dataset ready",
		zap.Int("orders", ds.Orders.Len()),
		zap.Int("sellers", ds.Sellers.Len()),
		zap.Int("transit", ds.Transit.Len()),
	)
	return bo, nil
}
