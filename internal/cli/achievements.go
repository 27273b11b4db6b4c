package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievements and chain progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cycle(); err != nil {
			return err
		}

		defs, done := e.session.Achievements()
		fmt.Println("Achievements:")
		for _, def := range defs {
			mark := " "
			if done[def.ID] {
				mark = "✓"
			}
			fmt.Printf("  [%s] %s %s (%s) — %s\n", mark, def.Icon, def.Name, def.Rarity, def.Description)
		}

		chains, prog := e.session.Chains()
		fmt.Println("\nChains:")
		for _, chain := range chains {
			p := prog[chain.ID]
			fmt.Printf("  %s %s (%s) — stage %d/%d\n",
				chain.Icon, chain.Name, chain.Rarity, p.CurrentStage, len(chain.Stages))
			for i, stage := range chain.Stages {
				mark := " "
				if i < p.CurrentStage {
					mark = "✓"
				}
				fmt.Printf("      [%s] %s — %s\n", mark, stage.Name, stage.Description)
			}
		}
		return nil
	},
}
