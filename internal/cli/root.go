// Package cli implements workoutctl, a terminal front end for the workout store.
package cli

import (
	"alcyxob/workout-tracker/internal/client"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository/driver"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/store"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configDir string
	serverURL string
	embedded  bool
}

// session is one command invocation: a loaded store plus whatever must be closed afterwards.
type session struct {
	store *store.Store
	close func()
}

// NewRootCommand builds the workoutctl command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "workoutctl",
		Short:         "Record, edit and review workouts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configDir, "config", ".", "Directory containing config.yaml and .env")
	root.PersistentFlags().StringVar(&opts.serverURL, "server", "", "Server base URL (overrides client.base_url)")
	root.PersistentFlags().BoolVar(&opts.embedded, "embedded", false, "Use the configured storage directly instead of the server")

	root.AddCommand(
		newListCommand(opts),
		newDayCommand(opts),
		newAddCommand(opts),
		newUpdateCommand(opts),
		newStatusCommand(opts),
		newDeleteCommand(opts),
	)
	return root
}

// open builds the backend, hydrates a store from it and fails if the load failed.
func (o *rootOptions) open(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	var backend store.Backend
	closeFn := func() { _ = log.Sync() }
	if o.embedded {
		repo, err := driver.Open(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		backend = service.NewLocalBackend(service.NewWorkoutService(repo, log, metrics.New()))
		closeFn = func() {
			_ = repo.Close(context.Background())
			_ = log.Sync()
		}
	} else {
		baseURL := cfg.Client.BaseURL
		if o.serverURL != "" {
			baseURL = o.serverURL
		}
		backend = client.NewWorkoutClient(baseURL, cfg.Client.Timeout)
	}

	s := store.New(backend, store.WithLogger(log.WithComponent("store")))
	s.Load(ctx)
	if msg := s.LastError(); msg != "" {
		closeFn()
		return nil, errors.New(msg)
	}
	return &session{store: s, close: closeFn}, nil
}

// finish waits for pending saves and reports a failed save as the command's error.
func (s *session) finish() error {
	defer s.close()
	s.store.Wait()
	if msg := s.store.LastError(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
