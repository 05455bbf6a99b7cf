package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhle/achievo/internal/auth"
	"github.com/nhle/achievo/internal/credential"
	"github.com/nhle/achievo/internal/fixtures"
	"github.com/nhle/achievo/internal/logging"
	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/store"
	"github.com/nhle/achievo/internal/taskstore"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	dbPath     string
	logLevel   string
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", model.DefaultConfigPath(), "config file")
	f.StringVar(&o.dbPath, "db", "", "database file (overrides data.db_path)")
	f.StringVar(&o.logLevel, "log-level", "", "log level (overrides log.level)")
}

// env holds the resources a command runs against.
type env struct {
	cfg     *model.AppConfig
	log     *logrus.Logger
	store   *store.SQLiteStore
	closers []func()
}

// open loads configuration and opens the logger and database.
func (o *options) open() (*env, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Data.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log, closers: []func(){closeLog}}

	s, err := store.NewSQLiteStore(cfg.Data.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	e.store = s
	e.closers = append(e.closers, func() {
		if err := s.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	})

	log.WithFields(logrus.Fields{
		"config": o.configPath,
		"db":     cfg.Data.DBPath,
	}).Debug("environment ready")
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// secrets opens the system keyring. A nil SecretStore is returned when
// none is available so sessions keep working without it.
func (e *env) secrets() auth.SecretStore {
	ring, err := credential.Open(model.ConfigDir())
	if err != nil {
		e.log.WithError(err).Warn("keyring unavailable")
		return nil
	}
	return ring
}

func (e *env) gate() *auth.Gate {
	delay := time.Duration(e.cfg.Auth.DelayMs) * time.Millisecond
	return auth.NewGate(auth.NewMock(delay), e.store, e.secrets(), e.log)
}

// taskStore builds the in-memory task collection, seeded when configured.
func (e *env) taskStore(n taskstore.Notifier) *taskstore.TaskStore {
	opts := []taskstore.Option{taskstore.WithLogger(e.log)}
	if e.cfg.Tasks.SeedFixtures {
		opts = append(opts, taskstore.WithSeed(fixtures.Tasks(time.Now())))
	}
	return taskstore.New(n, opts...)
}
