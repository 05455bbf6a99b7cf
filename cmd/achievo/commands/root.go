package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/achievo/internal/app"
	"github.com/nhle/achievo/internal/notify"
	"github.com/nhle/achievo/internal/theme"
)

// toastBuffer is how many unseen notifications the UI keeps.
const toastBuffer = 16

// NewRootCmd creates the root command. Without a subcommand it starts the
// terminal UI.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "achievo",
		Short:         "A terminal task manager",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context(), opts)
		},
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(
		newTasksCommand(opts),
		newNotificationsCommand(opts),
		newLogoutCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

func runUI(ctx context.Context, opts *options) error {
	env, err := opts.open()
	if err != nil {
		return err
	}
	defer env.Close()

	mode, err := theme.Load(ctx, env.store, env.cfg.Display.Theme)
	if err != nil {
		env.log.WithError(err).Warn("using configured theme")
	}
	theme.Apply(mode)

	gate := env.gate()
	if u, ok, err := gate.Restore(ctx); err != nil {
		env.log.WithError(err).Warn("previous session not restored")
	} else if ok {
		env.log.WithField("user_id", u.ID).Info("session restored")
	}

	toasts := notify.NewToasts(toastBuffer)
	tasks := env.taskStore(notify.Multi{toasts, notify.NewLog(env.store, env.log)})

	m := app.New(app.Deps{
		Tasks:  tasks,
		Gate:   gate,
		Toasts: toasts,
		Prefs:  env.store,
		Log:    env.log,
	})

	env.log.Info("starting ui")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	env.log.Info("ui stopped")
	return nil
}
