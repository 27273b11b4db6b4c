package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

func init() {
	dataResetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "skip the confirmation prompt")
	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataResetCmd)
	rootCmd.AddCommand(dataCmd)
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import, or reset the progression state",
}

var dataExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export state to a JSON file (stdout if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := e.session.Export()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0600); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace state with a previously exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.Import(data); err != nil {
			return err
		}
		fmt.Println("Import complete. The previous state was backed up.")
		return nil
	},
}

var dataResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all progression (a backup is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			fmt.Print("This wipes all progression. Type 'reset' to confirm: ")
			var answer string
			fmt.Scanln(&answer)
			if answer != "reset" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.Reset(); err != nil {
			return err
		}
		fmt.Println("State reset. The previous state was backed up.")
		return nil
	},
}
