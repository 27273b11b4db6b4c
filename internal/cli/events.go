package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zero2one-app/zero2one/internal/domain"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show active events and recent history",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.cycle(); err != nil {
			return err
		}

		e.session.View(func(st *domain.UserState) {
			if len(st.ActiveEvents) == 0 {
				fmt.Println("No active events.")
			} else {
				fmt.Println("Active events:")
				for _, ev := range st.ActiveEvents {
					remaining := time.Until(ev.ExpiresAt()).Round(time.Minute)
					fmt.Printf("  %s %s [%s] — %s (%s left)\n",
						ev.Icon, ev.Name, ev.Rarity, ev.Description, remaining)
					if ev.Challenge != nil {
						fmt.Printf("      bonus: %s\n", ev.Challenge.Description)
					}
				}
			}

			if len(st.EventHistory) > 0 {
				fmt.Println("\nRecent history:")
				start := len(st.EventHistory) - 5
				if start < 0 {
					start = 0
				}
				for _, ev := range st.EventHistory[start:] {
					fmt.Printf("  %s %s — %s\n", ev.Icon, ev.Name, ev.Outcome)
				}
			}
		})
		return nil
	},
}
