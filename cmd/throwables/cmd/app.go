package cmd

import (
	"context"
	"strings"

	"github.com/msto63/throwables/internal/declloader"
	"github.com/msto63/throwables/internal/journal"
	"github.com/msto63/throwables/pkg/core/config"
	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/core/logging"
	"github.com/msto63/throwables/pkg/scarpet"
	"github.com/msto63/throwables/pkg/taxonomy"
)

// app is the state shared by all subcommands
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	reg     *taxonomy.Registry
	journal *journal.SQLiteJournal
	loader  *declloader.Loader
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if found, ok := config.Discover(); ok {
		return config.Load(found)
	}
	return config.Default(), nil
}

// newApp loads the config and builds the registry: built-ins, inline
// declarations, journal replay, declarations directory. With
// taxonomy.watch the directory stays watched until Close.
func newApp(cfgPath string, verbose bool) (*app, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       level,
		Format:      cfg.General.LogFormat,
	})

	reg, err := taxonomy.New(taxonomy.WithLogger(logger.With("component", "registry")))
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, reg: reg}

	if err := a.applyInline(); err != nil {
		return nil, err
	}

	if cfg.Taxonomy.JournalPath != "" {
		j, err := journal.Open(journal.Config{
			Path:   cfg.Taxonomy.JournalPath,
			Logger: logger.With("component", "journal"),
		})
		if err != nil {
			return nil, err
		}
		a.journal = j
		if _, err := j.Replay(context.Background(), reg); err != nil {
			j.Close()
			return nil, err
		}
	}

	if cfg.Taxonomy.DeclarationsDir != "" {
		a.loader = a.newLoader(cfg.Taxonomy.DeclarationsDir)
		if _, err := a.loader.LoadAll(); err != nil {
			a.Close()
			return nil, err
		}
		if cfg.Taxonomy.Watch {
			// stopped by Close
			if err := a.loader.Watch(context.Background()); err != nil {
				a.Close()
				return nil, err
			}
		}
	}

	return a, nil
}

func (a *app) applyInline() error {
	decls := make([]taxonomy.Declaration, len(a.cfg.Taxonomy.Declare))
	for i, d := range a.cfg.Taxonomy.Declare {
		parent := strings.TrimSpace(d.Parent)
		if parent == "" {
			parent = a.cfg.Taxonomy.RootBranch
		}
		decls[i] = taxonomy.Declaration{ID: strings.TrimSpace(d.ID), Parent: parent}
	}
	if _, err := scarpet.DeclareAll(a.reg, decls); err != nil {
		return mdwerrors.Wrap(err, "config taxonomy.declare")
	}
	return nil
}

func (a *app) newLoader(dir string) *declloader.Loader {
	return declloader.NewLoader(a.reg, dir,
		declloader.WithLogger(a.logger.With("component", "declloader")),
		declloader.WithRootBranch(a.cfg.Taxonomy.RootBranch),
		declloader.WithDebounce(a.cfg.Taxonomy.Debounce.Duration),
	)
}

// describe looks up declaration file descriptions for rendering
func (a *app) describe(id string) (string, bool) {
	if a.loader == nil {
		return "", false
	}
	return a.loader.Description(id)
}

// Close releases the journal and stops any watcher
func (a *app) Close() error {
	if a.loader != nil {
		a.loader.Stop()
	}
	var err error
	if a.journal != nil {
		err = a.journal.Close()
		a.journal = nil
	}
	a.logger.Sync()
	return err
}
