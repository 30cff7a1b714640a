package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/report"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a roster without assigning teams",
	Long: `Check loads a student roster, runs the same validation as an assignment
run, and prints the discipline breakdown. Nothing is written.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("input", "i", "", "student roster CSV to read (required)")
	checkCmd.Flags().String("groups", "", "YAML programme-to-group mapping (default: built-in study mapping)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return errors.NewConfigError("an input roster is required", nil).WithParameter("input")
	}

	groups := roster.DefaultGroupMap()
	if groupsFile, _ := cmd.Flags().GetString("groups"); groupsFile != "" {
		var err error
		groups, err = roster.LoadGroupMap(groupsFile, groups.Fallback())
		if err != nil {
			return err
		}
	}

	students, err := roster.Load(input, groups)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.RosterCheck(input, students))
	return nil
}
