package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitworld/bitworld/internal/component"
	"github.com/bitworld/bitworld/internal/config"
	"github.com/bitworld/bitworld/internal/core/ecs"
	"github.com/bitworld/bitworld/internal/core/event"
	coresys "github.com/bitworld/bitworld/internal/core/system"
	"github.com/bitworld/bitworld/internal/data"
	"github.com/bitworld/bitworld/internal/scripting"
	"github.com/bitworld/bitworld/internal/system"
	"github.com/bitworld/bitworld/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string, width int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              bitworld  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m %s \033[90m(%d-bit masks)\033[0m\n\n", name, width)
}

func printSection(title string) {
	lineLen := 46 - utf8.RuneCountInString(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - utf8.RuneCountInString(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/bitworld.toml"
	if p := os.Getenv("BITWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Debug); stop != nil {
		defer stop()
	}

	printBanner(cfg.World.Name, cfg.World.MaskWidth)

	// 3. Load scene and scripts
	printSection("scene")
	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	printStat("component kinds", len(scene.Components))
	printStat("entities", scene.EntityCount())
	printStat("systems", len(scene.Systems))

	scripts, err := scripting.NewEngine(cfg.Scene.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	fmt.Println()

	// 4. Event bus
	bus := event.NewBus()
	event.Subscribe(bus, func(ev event.EntityDespawned) {
		log.Info("entity despawned", zap.String("world", ev.World), zap.Uint64("entity", ev.ID))
	})
	event.Subscribe(bus, func(ev event.ComponentDropped) {
		log.Warn("component not registered", zap.Uint64("entity", ev.ID), zap.String("type", ev.Type))
	})

	deps := world.Deps{
		Catalog: component.NewCatalog(),
		Scripts: scripts,
		Bus:     bus,
		Log:     log,
	}

	// 5. Build the world at the configured width and run it
	switch cfg.World.MaskWidth {
	case 8:
		return runWorld[ecs.Mask8](cfg, scene, deps)
	case 16:
		return runWorld[ecs.Mask16](cfg, scene, deps)
	case 32:
		return runWorld[ecs.Mask32](cfg, scene, deps)
	case 64:
		return runWorld[ecs.Mask64](cfg, scene, deps)
	case 128:
		return runWorld[ecs.Mask128](cfg, scene, deps)
	case 256:
		return runWorld[ecs.Mask256](cfg, scene, deps)
	}
	return fmt.Errorf("%w: mask_width %d", config.ErrInvalid, cfg.World.MaskWidth)
}

func runWorld[M ecs.Mask[M]](cfg *config.Config, scene *data.Scene, deps world.Deps) error {
	w, err := world.Build[uint64, M](cfg.World.Name, scene, deps)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	runner := coresys.NewRunner(
		coresys.WithBudget(cfg.Loop.TickRate),
		coresys.WithLogger(deps.Log),
	)
	runner.Register(system.NewEventDispatchSystem(deps.Bus))
	runner.Register(system.NewScheduleSystem(w, cfg.World.Mode))
	runner.Register(system.NewCleanupSystem(w))

	printSection("ready")
	printReady(fmt.Sprintf("tick loop started (tick: %s, mode: %s)", cfg.Loop.TickRate, cfg.World.Mode))
	fmt.Println()

	ticks, err := loop(runner, cfg.Loop, deps.Log)
	deps.Log.Info("world stopped",
		zap.Int("ticks", ticks),
		zap.Int("entities", w.Len()),
	)
	return err
}

// loop ticks runner until a shutdown signal arrives or cfg.MaxTicks ticks
// have run.
func loop(runner *coresys.Runner, cfg config.LoopConfig, log *zap.Logger) (int, error) {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.TickRate)
			ticks++
			if cfg.MaxTicks > 0 && ticks >= cfg.MaxTicks {
				log.Info("tick limit reached", zap.Int("max_ticks", cfg.MaxTicks))
				return ticks, nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return ticks, nil
		}
	}
}

// startProfile starts the configured profiler and returns its stop function,
// or nil when profiling is off.
func startProfile(cfg config.DebugConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil
	}
	return profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook, profile.Quiet).Stop
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
