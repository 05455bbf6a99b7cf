package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/taskstore"
	"github.com/nhle/achievo/internal/ui/tasklist"
)

type tasksOptions struct {
	json     bool
	status   string
	priority string
	search   string
}

func newTasksCommand(opts *options) *cobra.Command {
	to := &tasksOptions{}

	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Short:   "Print the task list",
		Long:    `Print the tasks a fresh session starts with, followed by their counts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := to.filter()
			if err != nil {
				return err
			}

			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()

			s := env.taskStore(nil)
			tasks := s.Filter(f)
			if to.json {
				return writeTasksJSON(cmd.OutOrStdout(), tasks, s.Stats())
			}
			return writeTasksTable(cmd.OutOrStdout(), tasks, s.Stats())
		},
	}

	cmd.Flags().BoolVar(&to.json, "json", false, "print as JSON")
	cmd.Flags().StringVar(&to.status, "status", "all", "all, pending, or completed")
	cmd.Flags().StringVar(&to.priority, "priority", "", "high, medium, or low")
	cmd.Flags().StringVar(&to.search, "search", "", "match title or description")

	return cmd
}

func (o *tasksOptions) filter() (taskstore.Filter, error) {
	f := taskstore.Filter{Query: o.search}

	switch strings.ToLower(strings.TrimSpace(o.status)) {
	case "", "all":
		f.Status = taskstore.StatusAll
	case "pending":
		f.Status = taskstore.StatusPending
	case "completed", "done":
		f.Status = taskstore.StatusCompleted
	default:
		return f, fmt.Errorf("unknown status %q", o.status)
	}

	if strings.TrimSpace(o.priority) != "" {
		p, err := model.ParsePriority(o.priority)
		if err != nil {
			return f, err
		}
		f.Priority = &p
	}
	return f, nil
}

func writeTasksJSON(w io.Writer, tasks []model.Task, stats taskstore.Stats) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	out := struct {
		Tasks []model.Task    `json:"tasks"`
		Stats taskstore.Stats `json:"stats"`
	}{tasks, stats}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTasksTable(w io.Writer, tasks []model.Task, stats taskstore.Stats) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PRIORITY", "DUE", "DONE")
	for _, task := range tasks {
		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.Format(tasklist.DateLayout)
		}
		done := ""
		if task.Completed {
			done = "yes"
		}
		t.Row(task.ID, task.Title, task.Priority.String(), due, done)
	}

	_, err := fmt.Fprintf(w, "%s\nTotal %d / Completed %d / Pending %d\n",
		t.String(), stats.Total, stats.Completed, stats.Pending)
	return err
}
