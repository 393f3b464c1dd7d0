package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/internal/config"
	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/internal/presentation/tui"
	"github.com/aretw0/jza/pkg/adapters/file"
	"github.com/aretw0/jza/pkg/adapters/memory"
	"github.com/aretw0/jza/pkg/adapters/redis"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "jza",
	Short: "jza models jazz harmony as a weighted chord-function automaton",
	Long: `jza builds an automaton whose states are harmonic functions and whose edges are
chords in Mehegan notation. Train it on a corpus of charts, then validate, analyze,
generate and reharmonize progressions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "jza.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("model", "", "Model name in the store (overrides config)")
	rootCmd.PersistentFlags().String("store", "", "Store type: memory, file or redis (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for reproducible generation (0 picks a random stream)")
}

// app holds everything a command needs once flags and config are resolved.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  ports.ModelStore
	engine *jza.Engine
	out    *tui.Printer
	close  func() error
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Type = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generation.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, cfg.Validate()
}

func openStore(cfg config.Config, logger *slog.Logger) (ports.ModelStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Type {
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.New(cfg.Store.Dir, file.WithFormat(file.Format(cfg.Store.Format))), noop, nil
	case config.StoreRedis:
		r := cfg.Store.Redis
		opts := []redis.Option{redis.WithTTL(r.TTL), redis.WithLogger(logger)}
		if r.Prefix != "" {
			opts = append(opts, redis.WithPrefix(r.Prefix))
		}
		s := redis.New(r.Addr, r.Password, r.DB, opts...)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

// newApp resolves config, logger and store and creates the engine. When open
// is set the stored model replaces the freshly built one if it exists.
func newApp(cmd *cobra.Command, open bool, opts ...jza.Option) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWithFormat(cfg.Log.Format, level)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	engineOpts := []jza.Option{
		jza.WithStore(store),
		jza.WithName(cfg.Model),
		jza.WithLogger(logger),
		jza.WithLimits(cfg.Generation.MaxRetries, cfg.Generation.MaxSteps),
		jza.WithAllowRepeats(cfg.Generation.AllowRepeats),
	}
	if cfg.Generation.Seed != 0 {
		engineOpts = append(engineOpts, jza.WithSeed(cfg.Generation.Seed))
	}
	engine, err := jza.New(append(engineOpts, opts...)...)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		engine: engine,
		out:    tui.NewPrinter(cmd.OutOrStdout()),
		close:  closeStore,
	}
	if open {
		found, err := engine.Open(ctx(cmd))
		if err != nil {
			_ = a.close()
			return nil, err
		}
		if !found {
			logger.Warn("no stored model, using an untrained default topology", "model", cfg.Model)
		}
	}
	return a, nil
}

// symbols parses args as one progression; each arg may hold several
// whitespace separated symbols.
func (a *app) symbols(args []string) ([]domain.Symbol, error) {
	syms, err := a.engine.ParseLine(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if len(syms) == 0 {
		return nil, domain.ErrEmptySequence
	}
	return syms, nil
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
