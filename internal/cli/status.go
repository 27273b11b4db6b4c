package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show attributes, ranks, streak, and active events",
	RunE:    runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.cycle(); err != nil {
		return err
	}
	st := e.session.Status()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ATTRIBUTE\tVALUE\tRANK\tNEXT\tPROGRESS")
	for _, a := range st.Attributes {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t%s %3.0f%%\n",
			a.Name, a.Value, a.Rank, a.NextRank,
			progressBar(a.Progress, 10), a.Progress*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nOverall rank: %s   Streak: %d days\n", st.OverallRank, st.Streak)
	fmt.Printf("Multipliers: job ×%.2f  event ×%.2f  streak ×%.2f\n",
		st.Multipliers.Job, st.Multipliers.Event, st.Multipliers.Streak)
	if st.CurrentJob != "" {
		fmt.Printf("Current job: %s\n", st.CurrentJob)
	}
	fmt.Printf("Tasks: %d/%d complete   Lifetime: %d tasks, %.0f points\n",
		st.TasksDone, st.TasksTotal, st.Stats.TasksCompleted, st.Stats.TotalPointsEarned)

	if len(st.ActiveEvents) > 0 {
		fmt.Println("\nActive events:")
		for _, ev := range st.ActiveEvents {
			fmt.Printf("  %s %s — %s\n", ev.Icon, ev.Name, ev.Description)
		}
	}

	if penalties, err := e.session.Penalties(3); err == nil && len(penalties) > 0 {
		fmt.Println("\nRecent penalties:")
		for _, p := range penalties {
			target := "all attributes"
			if p.Attribute != "" {
				target = p.Attribute
			}
			fmt.Printf("  %s  tier %d, -%.1f to %s (%d days inactive)\n",
				p.AppliedAt.Format("2006-01-02"), p.Tier, p.Points, target, p.InactiveDays)
		}
	}
	return nil
}

// progressBar renders a fixed-width unicode bar.
func progressBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
