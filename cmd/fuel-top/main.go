package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nixlim/fuel-top/internal/analytics"
	"github.com/nixlim/fuel-top/internal/api"
	"github.com/nixlim/fuel-top/internal/charts"
	"github.com/nixlim/fuel-top/internal/config"
	"github.com/nixlim/fuel-top/internal/report"
	"github.com/nixlim/fuel-top/internal/toast"
	"github.com/nixlim/fuel-top/internal/tui"
	"github.com/nixlim/fuel-top/internal/vehicles"
)

func main() {
	os.Exit(run())
}

// run wires the program and returns its exit code, so deferred cleanup
// runs before the process exits.
func run() int {
	configFlag := flag.String("config", "", "Path to the config file (default ~/.config/fuel-top/config.toml)")
	apiFlag := flag.String("api", "", "Override the API base URL")
	debugFlag := flag.String("debug", "", "Write API debug log (JSONL) to the specified file path")
	initFlag := flag.Bool("init-config", false, "Write a default config file and exit")
	exportFlag := flag.String("export", "", "Render the analytics charts to an HTML file and exit")
	periodFlag := flag.String("period", "", "Analytics period for -export (7days, 30days, 3months, 6months, 12months)")
	vehicleFlag := flag.Int("vehicle", 0, "Vehicle id for -export (0 for all vehicles)")
	flag.Parse()

	if *initFlag {
		RunSetup(*configFlag)
		return 0
	}

	cfg, warnings, err := loadConfig(*configFlag, *apiFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuel-top: config error: %v\n", err)
		return 1
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "fuel-top: config warning: %s\n", w)
	}

	logger := zap.NewNop()
	closeLog := func() {}
	if *debugFlag != "" {
		logger, closeLog, err = openDebugLog(*debugFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fuel-top: %v\n", err)
			return 1
		}
	}
	defer closeLog()

	client := api.New(cfg.API.BaseURL, api.WithLogger(logger))

	if *exportFlag != "" {
		return runExport(client, cfg, *exportFlag, *periodFlag, *vehicleFlag, logger)
	}

	dir := vehicles.NewDirectory(client)
	registry := charts.NewRegistry()
	toasts := toast.NewBuffer(cfg.Display.ToastBufferSize, secondsToDuration(cfg.Display.ToastSeconds))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := tui.NewShutdownManager()
	shutdownMgr.CancelRequests = cancel
	shutdownMgr.CloseCharts = registry.Close
	shutdownMgr.SyncLog = logger.Sync
	shutdownMgr.Cleanup = closeLog
	defer func() { _ = shutdownMgr.Shutdown() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log.SetOutput(io.Discard)

	logger.Debug("starting dashboard", zap.String("base_url", cfg.API.BaseURL))

	model := tui.NewModel(cfg,
		tui.WithContext(ctx),
		tui.WithBackend(client),
		tui.WithDirectory(dir),
		tui.WithRegistry(registry),
		tui.WithToasts(toasts),
		tui.WithOnShutdown(func() {
			_ = shutdownMgr.Shutdown()
		}),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	go func() {
		select {
		case <-sigCh:
			_ = shutdownMgr.Shutdown()
			p.Quit()
		case <-ctx.Done():
			return
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fuel-top: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file at path, or the default location when
// path is empty, and applies the -api override.
func loadConfig(path, apiOverride string) (config.Config, []string, error) {
	var (
		result *config.LoadResult
		err    error
	)
	if path == "" {
		result, err = config.Load()
	} else {
		result, err = config.LoadFrom(path)
	}
	if err != nil {
		return config.Config{}, nil, err
	}

	cfg := result.Config
	if apiOverride != "" {
		cfg.API.BaseURL = apiOverride
		if err := config.Validate(cfg); err != nil {
			return config.Config{}, nil, err
		}
	}
	return cfg, result.Warnings, nil
}

func runExport(client *api.Client, cfg config.Config, path, periodName string, vehicleID int, logger *zap.Logger) int {
	defer logger.Sync()

	if periodName == "" {
		periodName = cfg.Analytics.DefaultPeriod
	}
	period, err := analytics.ParsePeriod(periodName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuel-top: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := report.WriteFile(ctx, client, report.Options{
		Period:    period,
		VehicleID: vehicleID,
		Title:     cfg.Export.PageTitle,
		Static:    cfg.Analytics.StaticCharts,
	}, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuel-top: export failed: %v\n", err)
		return 1
	}

	fmt.Printf("Wrote %s (%s, %d months)\n", path, "Last "+period.String(), len(ds.Labels))
	fmt.Println(report.FormatStats(ds.Stats))
	return 0
}
