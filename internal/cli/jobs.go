package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	jobsCmd.AddCommand(jobsAcceptCmd)
	rootCmd.AddCommand(jobsCmd)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show the career catalog and what your attributes unlock",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cycle(); err != nil {
			return err
		}

		avail := make(map[string]bool)
		for _, def := range e.session.AvailableJobs() {
			avail[def.Name] = true
		}
		current := e.session.Status().CurrentJob

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "JOB\tRANK\tTIER\tPERK\tSTATUS")
		for _, def := range e.session.JobCatalog() {
			status := ""
			switch {
			case def.Name == current:
				status = "current"
			case avail[def.Name]:
				status = "available"
			}
			fmt.Fprintf(w, "%s %s\t%s\t%s\t×%.2f\t%s\n",
				def.Icon, def.Name, def.RankRequirement, def.Tier, def.PerkMultiplier, status)
		}
		return w.Flush()
	},
}

var jobsAcceptCmd = &cobra.Command{
	Use:   "accept <name>",
	Short: "Accept a job and gain its perk multiplier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		def, err := e.session.AcceptJob(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s You are now a %s. %s\n", def.Icon, def.Name, def.Perk)
		return nil
	},
}
