package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/krishvaghani-dev/dailyWork/internal/clock"
	"github.com/krishvaghani-dev/dailyWork/internal/config"
	"github.com/krishvaghani-dev/dailyWork/internal/journal"
	"github.com/krishvaghani-dev/dailyWork/internal/kv"
	"github.com/krishvaghani-dev/dailyWork/internal/task"
)

// session bundles the loaded configuration with an open, loaded store.
type session struct {
	cfg     *config.Config
	kv      kv.Storage
	journal *journal.SQLiteJournal
	store   *task.Store
	clock   clock.Clock
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadPaths(config.ExpandPath(cfgFile))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openSessionWith(ctx, cfg, clock.Real{})
}

func openSessionWith(ctx context.Context, cfg *config.Config, clk clock.Clock) (*session, error) {
	opts := cfg.KVOptions()
	if verbose {
		log.Printf("storage: %s %s (key %s)", opts.Backend, opts.Path, cfg.Storage.Key)
	}
	st, err := kv.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", opts.Backend, err)
	}

	s := &session{cfg: cfg, kv: st, clock: clk}
	storeOpts := []task.Option{task.WithKey(cfg.Storage.Key), task.WithClock(clk)}

	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.JournalPath())
		if err != nil {
			log.Printf("warning: journal unavailable, changes will not be recorded: %v", err)
		} else {
			s.journal = j
			storeOpts = append(storeOpts, task.WithJournal(j))
		}
	}

	s.store = task.NewStore(st, storeOpts...)
	if err := s.store.Load(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return s, nil
}

func (s *session) Close() error {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("warning: failed to close journal: %v", err)
		}
	}
	return s.kv.Close()
}
