package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var medicineCmd = &cobra.Command{
	Use:   "medicine NAME",
	Short: "Show catalog details for a medicine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		emergency, _ := cmd.Flags().GetBool("emergency")
		med, err := a.svc.LookupMedicine(cmd.Context(), args[0], emergency)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, med.Name)
		fmt.Fprintf(out, "  Uses:         %s\n", med.Uses)
		fmt.Fprintf(out, "  Category:     %s\n", med.Category)
		fmt.Fprintf(out, "  Side effects: %s\n", med.SideEffects)
		if med.Emergency {
			fmt.Fprintln(out, "  Emergency:    yes")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(medicineCmd)
	medicineCmd.Flags().BoolP("emergency", "e", false, "Only match emergency medicines")
}
