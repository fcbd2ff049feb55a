package cli

import (
	"alcyxob/workout-tracker/internal/domain"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()
			return printWorkouts(cmd.OutOrStdout(), sess.store.All(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newDayCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show workouts for one day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			if len(args) == 1 {
				if _, err := domain.ParseDate(args[0]); err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
				}
				sess.store.SelectDate(args[0])
			}
			return printWorkouts(cmd.OutOrStdout(), sess.store.ByDate(sess.store.SelectedDate()), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// workoutFlags are the editable fields shared by add and update.
type workoutFlags struct {
	title, date, description, results, comments string
}

func (f *workoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Display name (defaults to \"Workout\")")
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.description, "description", "", "Planned workout")
	cmd.Flags().StringVar(&f.results, "results", "", "What actually happened")
	cmd.Flags().StringVar(&f.comments, "comments", "", "Free-form notes")
}

// apply copies the flags the user set onto w.
func (f *workoutFlags) apply(cmd *cobra.Command, w *domain.Workout) error {
	changed := cmd.Flags().Changed
	if changed("date") {
		if _, err := domain.ParseDate(f.date); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", f.date)
		}
		w.Date = f.date
	}
	if changed("title") {
		w.Title = f.title
	}
	if changed("description") {
		w.Description = f.description
	}
	if changed("results") {
		w.Results = f.results
	}
	if changed("comments") {
		w.Comments = f.comments
	}
	return nil
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	flags := &workoutFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workout (status is derived from the date)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			w := domain.Workout{Date: sess.store.SelectedDate()}
			if err := flags.apply(cmd, &w); err != nil {
				sess.close()
				return err
			}
			added := sess.store.Add(w)
			if err := sess.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s)\n", added.ID, added.Date, added.Status)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	flags := &workoutFlags{}
	var status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			w, ok := sess.store.Get(args[0])
			if !ok {
				sess.close()
				fmt.Fprintf(cmd.OutOrStdout(), "No workout with id %s\n", args[0])
				return nil
			}
			if err := flags.apply(cmd, &w); err != nil {
				sess.close()
				return err
			}
			if cmd.Flags().Changed("status") {
				st, err := domain.ParseStatus(status)
				if err != nil {
					sess.close()
					return err
				}
				w.Status = st
			}
			sess.store.Update(w)
			if err := sess.finish(); err != nil {
				return err
			}
			updated, _ := sess.store.Get(w.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s, %s)\n", updated.ID, updated.Date, updated.Status)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "upcoming, missed or complete")
	return cmd
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <upcoming|missed|complete>",
		Short: "Set the status of a workout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			if !sess.store.SetStatus(args[0], st) {
				sess.close()
				fmt.Fprintf(cmd.OutOrStdout(), "No workout with id %s\n", args[0])
				return nil
			}
			if err := sess.finish(); err != nil {
				return err
			}
			w, _ := sess.store.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", w.ID, w.Status)
			return nil
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			if !sess.store.Delete(args[0]) {
				sess.close()
				fmt.Fprintf(cmd.OutOrStdout(), "No workout with id %s\n", args[0])
				return nil
			}
			if err := sess.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func printWorkouts(out io.Writer, workouts []domain.Workout, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(workouts)
	}
	if len(workouts) == 0 {
		fmt.Fprintln(out, "No workouts.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tTITLE\tDESCRIPTION")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", w.ID, w.Date, w.Status, w.Title, oneLine(w.Description))
	}
	return tw.Flush()
}

func oneLine(s string) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return string(r)
}
