// Package cmd wires the command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/assign"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/config"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/logging"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/report"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
)

var rootCmd = &cobra.Command{
	Use:   "assign-teams",
	Short: "Assign students to teams for the XR education study",
	Long: `Assign-teams reads a student roster (CSV), partitions the students into
teams under a cross-disciplinary, same-branch, or mixed condition, and
writes the assignment out as CSV. Runs are deterministic: the same input
and the same seed always produce the same teams.`,
	RunE:          runAssign,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/assign-teams/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().StringP("input", "i", "", "student roster CSV to read (required)")
	rootCmd.Flags().StringP("output", "o", "", "assignment CSV to write (required)")
	rootCmd.Flags().Int("team-count", 0, "number of teams (0 derives one from the roster size)")
	rootCmd.Flags().Int("team-size-min", 3, "smallest acceptable team size")
	rootCmd.Flags().Int("team-size-max", 5, "largest acceptable team size")
	rootCmd.Flags().String("condition", "cross", "assignment condition: cross, same, or mixed")
	rootCmd.Flags().Int64("seed", -1, "shuffle seed (negative keeps roster order)")
	rootCmd.Flags().Int("cross-teams", 0, "cross teams in mixed mode (0 means half)")
	rootCmd.Flags().String("groups", "", "YAML programme-to-group mapping (default: built-in study mapping)")

	_ = viper.BindPFlag("assignment.team_count", rootCmd.Flags().Lookup("team-count"))
	_ = viper.BindPFlag("assignment.team_size_min", rootCmd.Flags().Lookup("team-size-min"))
	_ = viper.BindPFlag("assignment.team_size_max", rootCmd.Flags().Lookup("team-size-max"))
	_ = viper.BindPFlag("assignment.condition", rootCmd.Flags().Lookup("condition"))
	_ = viper.BindPFlag("assignment.seed", rootCmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("assignment.cross_teams", rootCmd.Flags().Lookup("cross-teams"))
	_ = viper.BindPFlag("groups.file", rootCmd.Flags().Lookup("groups"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// Configuration comes from flags and the config file only; environment
	// variables are never consulted.

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runAssign(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	if input == "" {
		return errors.NewConfigError("an input roster is required", nil).WithParameter("input")
	}
	if output == "" {
		return errors.NewConfigError("an output path is required", nil).WithParameter("output")
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.NewConfigError("invalid configuration", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger = logger.WithInput(input)

	groups, err := loadGroups(cfg)
	if err != nil {
		return err
	}

	students, err := roster.Load(input, groups)
	if err != nil {
		return err
	}

	// An unset team count is derived from the roster; an explicit
	// --team-count 0 is rejected by the assigner like any other
	// non-positive count.
	teamCount := cfg.Assignment.TeamCount
	if teamCount == 0 && !cmd.Flags().Changed("team-count") {
		teamCount = assign.DeriveTeamCount(len(students), cfg.Assignment.TeamSizeMax)
		logger.Debug("team count derived", "team_count", teamCount)
	}

	assigner := assign.New(
		assign.WithTeamCount(teamCount),
		assign.WithTeamSize(cfg.Assignment.TeamSizeMin, cfg.Assignment.TeamSizeMax),
		assign.WithCondition(assign.Condition(cfg.Assignment.Condition)),
		assign.WithSeed(cfg.Assignment.Seed),
		assign.WithCrossTeams(cfg.Assignment.CrossTeams),
		assign.WithLogger(logger.WithCondition(cfg.Assignment.Condition)),
	)

	assignment, err := assigner.Assign(students)
	if err != nil {
		return err
	}

	if err := roster.WriteAssignments(output, assignment.Rows()); err != nil {
		return err
	}

	logger.Info("assignment written",
		"output", output,
		"teams", len(assignment.Teams),
		"students", assignment.TotalStudents(),
		"warnings", len(assignment.Warnings),
	)

	fmt.Fprint(cmd.OutOrStdout(), report.Summary(assignment))
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logging")
	}
	return logger, nil
}

func loadGroups(cfg *config.Config) (roster.GroupMap, error) {
	if cfg.Groups.File == "" {
		return roster.DefaultGroupMap(), nil
	}
	return roster.LoadGroupMap(cfg.Groups.File, cfg.Groups.Default)
}
