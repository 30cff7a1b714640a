package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "assignment.team_count")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found. It validates parameter shape only; population-dependent
// checks (team count vs. roster size) belong to the assigner, which sees
// the roster.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAssignment()...)
	errors = append(errors, c.validateGroups()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAssignment() []ValidationError {
	var errors []ValidationError
	a := c.Assignment

	if a.TeamCount < 0 {
		errors = append(errors, ValidationError{
			Field:   "assignment.team_count",
			Value:   a.TeamCount,
			Message: "must be positive, or zero to derive from the roster size",
		})
	}

	if a.TeamSizeMin < 1 {
		errors = append(errors, ValidationError{
			Field:   "assignment.team_size_min",
			Value:   a.TeamSizeMin,
			Message: "must be at least 1",
		})
	}

	if a.TeamSizeMax < a.TeamSizeMin {
		errors = append(errors, ValidationError{
			Field:   "assignment.team_size_max",
			Value:   a.TeamSizeMax,
			Message: fmt.Sprintf("must be >= team_size_min (%d)", a.TeamSizeMin),
		})
	}

	if a.Condition != "" && !IsValidCondition(a.Condition) {
		errors = append(errors, ValidationError{
			Field:   "assignment.condition",
			Value:   a.Condition,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidConditions(), ", ")),
		})
	}

	if a.CrossTeams < 0 {
		errors = append(errors, ValidationError{
			Field:   "assignment.cross_teams",
			Value:   a.CrossTeams,
			Message: "must be positive, or zero for half the teams",
		})
	}

	if a.CrossTeams > 0 && a.Condition != "mixed" {
		errors = append(errors, ValidationError{
			Field:   "assignment.cross_teams",
			Value:   a.CrossTeams,
			Message: "only applies when condition is \"mixed\"",
		})
	}

	return errors
}

func (c *Config) validateGroups() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Groups.Default) == "" {
		errors = append(errors, ValidationError{
			Field:   "groups.default",
			Value:   c.Groups.Default,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
