package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zero2one-app/zero2one/internal/domain"
)

var (
	taskCategory    string
	taskAttribute   string
	taskPoints      float64
	taskDescription string
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "c", "daily", "daily, weekly, or special")
	taskAddCmd.Flags().StringVarP(&taskAttribute, "attribute", "a", "", "attribute the task trains (required)")
	taskAddCmd.Flags().Float64VarP(&taskPoints, "points", "p", 5, "base points awarded on completion")
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "optional description")
	taskAddCmd.MarkFlagRequired("attribute")

	taskDoneCmd.Flags().StringVarP(&taskCategory, "category", "c", "daily", "task category")
	taskRmCmd.Flags().StringVarP(&taskCategory, "category", "c", "daily", "task category")

	taskCmd.AddCommand(taskAddCmd, taskDoneCmd, taskRmCmd, taskListCmd)
	rootCmd.AddCommand(taskCmd)
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		task, err := e.session.AddTask(args[0], taskDescription,
			domain.Category(taskCategory), taskAttribute, taskPoints)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s task %q (%s, %.0f pts)  id=%s\n",
			task.Category, task.Name, task.Attribute, task.Points, task.ID)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id-or-name>",
	Short: "Complete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cycle(); err != nil {
			return err
		}
		category := domain.Category(taskCategory)
		id := resolveTaskID(e, category, args[0])

		res, err := e.session.CompleteTask(category, id)
		if err != nil {
			return err
		}
		fmt.Printf("Completed %q: +%.1f %s\n", res.Task.Name, res.Awarded, res.Task.Attribute)
		for _, def := range res.Unlocked {
			fmt.Printf("  %s Achievement unlocked: %s — %s\n", def.Icon, def.Name, def.Description)
		}
		for _, adv := range res.ChainStages {
			fmt.Printf("  %s %s: %s complete\n", adv.Chain.Icon, adv.Chain.Name, adv.Stage.Name)
		}
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id-or-name>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		category := domain.Category(taskCategory)
		id := resolveTaskID(e, category, args[0])
		if err := e.session.RemoveTask(category, id); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cycle(); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tNAME\tATTRIBUTE\tPOINTS\tDONE\tID")
		e.session.View(func(st *domain.UserState) {
			for _, c := range domain.Categories() {
				for _, t := range st.Tasks[c] {
					done := ""
					if t.Completed {
						done = "✓"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%s\n",
						c, t.Name, t.Attribute, t.Points, done, t.ID)
				}
			}
		})
		return w.Flush()
	},
}

// resolveTaskID lets commands take either a task id or an exact name.
func resolveTaskID(e *engine, category domain.Category, arg string) string {
	id := arg
	e.session.View(func(st *domain.UserState) {
		if _, ok := st.Tasks[category][arg]; ok {
			return
		}
		for _, t := range st.Tasks[category] {
			if t.Name == arg {
				id = t.ID
				return
			}
		}
	})
	return id
}
