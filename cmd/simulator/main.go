package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ordermanager/internal/action"
	"ordermanager/internal/config"
	"ordermanager/internal/domain"
	"ordermanager/internal/engine"
	"ordermanager/internal/infra"
	"ordermanager/internal/market"
	"ordermanager/internal/orders"
	"ordermanager/internal/throttle"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults embedded if omitted)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load configuration", slog.Any("error", err))
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	runID := uuid.New()
	logger = logger.With(slog.String("run_id", runID.String()))

	registry := prometheus.NewRegistry()
	metrics := infra.NewMetrics(registry)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		logger.Info("metrics server listening", slog.String("addr", cfg.Metrics.ListenAddr))
		if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := buildSimulation(cfg, logger, metrics)

	logger.Info("simulator starting", slog.Int64("seed", cfg.Simulation.Seed))
	run(ctx, sim, cfg.Simulation.Ticks, logger)
	logger.Info("simulator stopped", slog.Int("ticks", sim.TickCount))
}

func buildSimulation(cfg *config.Config, logger *slog.Logger, metrics *infra.Metrics) *engine.Simulation {
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))

	store := domain.NewStore()
	likelihood, _ := cfg.Simulation.LikelihoodOfBeingThrottled.Float64()
	queue := throttle.NewQueue(likelihood)
	mirror := market.NewMirror(market.NewPaperSink())
	manager := orders.NewManager(store, queue, mirror, rng)
	source := action.NewRandomSource(rng, cfg.Simulation.MaxOperationsToGenerateAtATime)

	limits := engine.Limits{
		MaxOperationsToClearFromQueue: cfg.Simulation.MaxOperationsToClearFromQueue,
		MaxOperationsToAcknowledge:    cfg.Simulation.MaxOperationsToAcknowledge,
		UpperPrice:                    domain.Price(cfg.Simulation.UpperPrice),
		OrderGcThreshold:              cfg.Simulation.OrderGcThreshold,
		QuoteOpsGcThreshold:           cfg.Simulation.QuoteOpsGcThreshold,
		QuoteOpsGcKeepTail:            cfg.Simulation.QuoteOpsGcKeepTail,
	}

	return engine.New(store, queue, mirror, manager, source, rng, limits, logger, metrics)
}

// run drives ticks until maxTicks is reached (0 means "forever") or ctx is
// cancelled by a shutdown signal.
func run(ctx context.Context, sim *engine.Simulation, maxTicks int, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		sim.Tick()
		if maxTicks > 0 && sim.TickCount >= maxTicks {
			return
		}
	}
}
