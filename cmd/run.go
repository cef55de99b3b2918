package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/app"
	"github.com/abhisek/shindan/internal/config"
	"github.com/abhisek/shindan/internal/llm"
	"github.com/abhisek/shindan/internal/logging"
	"github.com/abhisek/shindan/internal/quizdata"
	"github.com/abhisek/shindan/internal/screens"
	"github.com/abhisek/shindan/internal/selector"
	"github.com/abhisek/shindan/internal/store"
	"github.com/abhisek/shindan/internal/telemetry"
)

// env carries what a command needs once configuration is resolved.
// Stores are opened on first use and closed by Close.
type env struct {
	cfg  *config.Config
	log  *zap.Logger
	data *quizdata.Data

	sqlite  *store.Store
	results store.ResultRepo
	closers []func() error
}

// loadConfig reads configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.Path = db
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := logging.ParseLevel(lvl); err != nil {
			return nil, err
		}
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// newEnv loads config, the logger and the quiz bank. console receives log
// output; pass nil while the terminal UI owns the screen.
func newEnv(cmd *cobra.Command, console io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	var data *quizdata.Data
	if cfg.Data.Questions != "" || cfg.Data.Characters != "" {
		data, err = quizdata.LoadFiles(cfg.Data.Questions, cfg.Data.Characters)
	} else {
		data, err = quizdata.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz data: %w", err)
	}

	log.Debug("environment ready",
		zap.String("config", cfg.File),
		zap.String("store", cfg.Store.Driver),
		zap.String("bank", data.Bank.Version))
	return &env{cfg: cfg, log: log, data: data}, nil
}

// Close releases every opened store and flushes the logger.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	_ = e.log.Sync()
	return errors.Join(errs...)
}

// sqliteStore opens the SQLite database on first use.
func (e *env) sqliteStore() (*store.Store, error) {
	if e.sqlite != nil {
		return e.sqlite, nil
	}
	path, err := e.cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.log.Debug("opened sqlite store", zap.String("path", path))
	e.sqlite = st
	e.closers = append(e.closers, st.Close)
	return st, nil
}

// eventRepo returns the LLM audit log, which always lives in SQLite.
func (e *env) eventRepo() (store.EventRepo, error) {
	st, err := e.sqliteStore()
	if err != nil {
		return nil, err
	}
	return st.EventRepo(), nil
}

// resultRepo returns the configured result backend.
func (e *env) resultRepo(ctx context.Context) (store.ResultRepo, error) {
	if e.results != nil {
		return e.results, nil
	}
	switch e.cfg.Store.Driver {
	case config.DriverRedis:
		rc := e.cfg.Store.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", rc.Addr, err)
		}
		e.closers = append(e.closers, client.Close)
		e.results = store.NewRedisResultRepo(client, rc.Prefix)
	default:
		st, err := e.sqliteStore()
		if err != nil {
			return nil, err
		}
		e.results = st.ResultRepo()
	}
	return e.results, nil
}

// newSelector builds a selector that logs its decisions, plus any extra
// observers.
func (e *env) newSelector(extra ...selector.Observer) *selector.Selector {
	obs := append([]selector.Observer{telemetry.LogObserver(e.log)}, extra...)
	return selector.New(e.data.Bank, selector.WithObserver(telemetry.Observers(obs...)))
}

// adviceService builds the advice generator. Without a configured or
// discoverable provider it serves the static text.
func (e *env) adviceService(ctx context.Context) (*advice.Service, error) {
	cfg := e.cfg.LLM
	if cfg.Discover() {
		e.log.Info("using LLM provider from environment", zap.String("provider", cfg.Provider))
	}
	if !cfg.Enabled() {
		return advice.NewService(nil, advice.DefaultConfig(), e.log), nil
	}

	events, err := e.eventRepo()
	if err != nil {
		e.log.Warn("LLM audit log unavailable", zap.Error(err))
		events = nil
	}
	provider, err := llm.NewProvider(ctx, cfg, events, e.log)
	if err != nil {
		return nil, err
	}
	return advice.NewService(provider, advice.DefaultConfig(), e.log), nil
}

// runApp launches the terminal quiz.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := newEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.resultRepo(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Result store unavailable:", err)
		fmt.Fprintln(os.Stderr, "Results will not be saved.")
		results = nil
	}

	svc, err := e.adviceService(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Static advice will be shown instead.")
		svc = nil
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(ctx, screens.Deps{
		Data:     e.data,
		Selector: e.newSelector(),
		Results:  results,
		Advice:   svc,
		Logger:   e.log,
	}, app.Options{SkipWelcome: skip})
}
