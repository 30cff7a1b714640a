// Package assign implements the team formation procedure for the study.
//
// Given a roster of students already resolved to discipline groups, the
// [Assigner] partitions them into teams whose sizes differ by at most one,
// under one of three conditions:
//
//   - cross: each team draws from as many distinct discipline groups as the
//     roster allows (treatment condition);
//   - same: each team's members share one discipline group as far as team
//     sizes permit (control condition);
//   - mixed: a target number of cross teams, the rest same-branch.
//
// The procedure is a single deterministic pass: group by discipline, then
// deal or pack groups into pre-computed team capacities. Supplying a seed
// shuffles the roster reproducibly before grouping; without a seed, roster
// order is the tie-breaker. Imperfect compositions (a discipline repeated
// in a cross team, a same team spanning two groups) are reported as
// warnings on the otherwise successful [Assignment].
package assign

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/logging"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
)

// Option configures an Assigner.
type Option func(*Assigner)

// WithTeamCount sets the number of teams to form. The count must be
// positive; callers without a preference can compute one with
// [DeriveTeamCount].
func WithTeamCount(count int) Option {
	return func(a *Assigner) {
		a.teamCount = count
	}
}

// WithTeamSize sets the accepted team size range.
func WithTeamSize(min, max int) Option {
	return func(a *Assigner) {
		a.sizeMin = min
		a.sizeMax = max
	}
}

// WithCondition sets the assignment condition.
func WithCondition(condition Condition) Option {
	return func(a *Assigner) {
		a.condition = condition
	}
}

// WithSeed sets the shuffle seed. A negative seed (the default) disables
// shuffling: students are taken in roster order, which is itself
// deterministic.
func WithSeed(seed int64) Option {
	return func(a *Assigner) {
		a.seed = seed
	}
}

// WithCrossTeams sets the number of cross-disciplinary teams formed in
// mixed mode. Zero (the default) means half the teams, minimum one.
func WithCrossTeams(count int) Option {
	return func(a *Assigner) {
		a.crossTeams = count
	}
}

// WithLogger sets the logger for placement decisions and warnings.
func WithLogger(logger *logging.Logger) Option {
	return func(a *Assigner) {
		a.logger = logger
	}
}

// Assigner produces team assignments. Construct with New, run with Assign.
// An Assigner holds no state across runs; Assign is a pure function of the
// roster and the configured parameters.
type Assigner struct {
	teamCount  int
	sizeMin    int
	sizeMax    int
	condition  Condition
	seed       int64
	crossTeams int
	logger     *logging.Logger
}

// New creates an Assigner. Defaults: team sizes 3 to 5, cross condition,
// no shuffle. A team count must be supplied via WithTeamCount.
func New(opts ...Option) *Assigner {
	a := &Assigner{
		teamCount:  0,
		sizeMin:    3,
		sizeMax:    5,
		condition:  ConditionCross,
		seed:       -1,
		crossTeams: 0,
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign partitions students into teams. It returns a ConfigError when the
// parameters cannot be satisfied by the roster and never produces a
// partial assignment.
func (a *Assigner) Assign(students []roster.Student) (*Assignment, error) {
	if !a.condition.IsValid() {
		return nil, errors.NewConfigError(
			fmt.Sprintf("condition must be one of: %s, %s, %s", ConditionCross, ConditionSame, ConditionMixed),
			errors.ErrUnknownCondition,
		).WithParameter("condition").WithValue(string(a.condition))
	}

	order := make([]roster.Student, len(students))
	copy(order, students)
	if a.seed >= 0 {
		rng := rand.New(rand.NewSource(a.seed))
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	teamCount := a.teamCount
	if err := a.validateTeamCount(teamCount, len(order)); err != nil {
		return nil, err
	}

	caps := capacities(len(order), teamCount)
	groups := groupByDiscipline(order)

	a.logger.Debug("roster grouped",
		"students", len(order),
		"teams", teamCount,
		"disciplines", len(groups),
		"shuffled", a.seed >= 0,
	)

	var teams [][]roster.Student
	var conditions []Condition

	switch a.condition {
	case ConditionCross:
		teams = dealCross(groups, caps)
		conditions = tagAll(teamCount, ConditionCross)
	case ConditionSame:
		teams = packSame(groups, caps)
		conditions = tagAll(teamCount, ConditionSame)
	case ConditionMixed:
		crossTeams, err := a.resolveCrossTeams(teamCount)
		if err != nil {
			return nil, err
		}
		teams = fillMixed(groups, caps, crossTeams)
		conditions = make([]Condition, teamCount)
		for i := range conditions {
			if i < crossTeams {
				conditions[i] = ConditionCross
			} else {
				conditions[i] = ConditionSame
			}
		}
	}

	assignment := &Assignment{Teams: make([]Team, teamCount)}
	for i, members := range teams {
		assignment.Teams[i] = Team{
			Label:     fmt.Sprintf("T%02d", i+1),
			Condition: conditions[i],
			Members:   members,
		}
	}

	assignment.Warnings = verifyComposition(assignment.Teams, len(groups))
	for _, warning := range assignment.Warnings {
		a.logger.Warn("team composition falls short", "team", warning.Team, "detail", warning.Detail)
	}

	return assignment, nil
}

// DeriveTeamCount picks a team count for n students with teams capped at
// sizeMax: the fewest teams that keep every team at or under the cap. The
// result still has to pass the minimum-size check in Assign.
func DeriveTeamCount(n, sizeMax int) int {
	if n <= 0 || sizeMax <= 0 {
		return 1
	}
	return (n + sizeMax - 1) / sizeMax
}

// validateTeamCount checks the team count against the roster size. All
// checks run before any placement so a bad configuration never produces
// output.
func (a *Assigner) validateTeamCount(teamCount, n int) error {
	if teamCount <= 0 {
		return errors.NewConfigError(
			"team count must be positive",
			errors.ErrTeamCountNonPositive,
		).WithParameter("team_count").WithValue(teamCount)
	}

	if teamCount*a.sizeMin > n {
		return errors.NewConfigError(
			fmt.Sprintf("%d teams of at least %d need %d students, roster has %d",
				teamCount, a.sizeMin, teamCount*a.sizeMin, n),
			errors.ErrRosterTooSmall,
		).WithParameter("team_count").WithValue(teamCount)
	}

	if teamCount*a.sizeMax < n {
		return errors.NewConfigError(
			fmt.Sprintf("%d teams of at most %d hold %d students, roster has %d",
				teamCount, a.sizeMax, teamCount*a.sizeMax, n),
			errors.ErrRosterTooLarge,
		).WithParameter("team_count").WithValue(teamCount)
	}

	return nil
}

// resolveCrossTeams derives and validates the mixed-mode cross-team target.
func (a *Assigner) resolveCrossTeams(teamCount int) (int, error) {
	crossTeams := a.crossTeams
	if crossTeams == 0 {
		crossTeams = teamCount / 2
		if crossTeams == 0 {
			crossTeams = 1
		}
	}

	if crossTeams > teamCount {
		return 0, errors.NewConfigError(
			fmt.Sprintf("asked for %d cross teams out of %d total", crossTeams, teamCount),
			errors.ErrCrossTeamsExceedTotal,
		).WithParameter("cross_teams").WithValue(a.crossTeams)
	}

	return crossTeams, nil
}

// capacities splits n students across teamCount teams with sizes differing
// by at most one; larger teams come first.
func capacities(n, teamCount int) []int {
	base := n / teamCount
	extra := n % teamCount

	caps := make([]int, teamCount)
	for i := range caps {
		caps[i] = base
		if i < extra {
			caps[i]++
		}
	}
	return caps
}

// disciplineGroup is one discipline's students in roster (or shuffled) order.
type disciplineGroup struct {
	name     string
	students []roster.Student
}

// groupByDiscipline partitions students by discipline group, preserving
// student order within each group. Groups are returned largest first; ties
// keep first-appearance order so the result is deterministic.
func groupByDiscipline(students []roster.Student) []disciplineGroup {
	index := make(map[string]int)
	var groups []disciplineGroup

	for _, student := range students {
		i, ok := index[student.Discipline]
		if !ok {
			i = len(groups)
			index[student.Discipline] = i
			groups = append(groups, disciplineGroup{name: student.Discipline})
		}
		groups[i].students = append(groups[i].students, student)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].students) > len(groups[j].students)
	})

	return groups
}

func tagAll(teamCount int, condition Condition) []Condition {
	conditions := make([]Condition, teamCount)
	for i := range conditions {
		conditions[i] = condition
	}
	return conditions
}

// verifyComposition checks every team against its condition's target and
// collects warnings for the ones that fall short. availableDisciplines is
// the number of distinct discipline groups in the whole roster, which
// bounds what a cross team can achieve.
func verifyComposition(teams []Team, availableDisciplines int) []Warning {
	var warnings []Warning

	for _, team := range teams {
		switch team.Condition {
		case ConditionCross:
			if availableDisciplines == 0 {
				continue
			}
			bound := ceilDiv(team.Size(), availableDisciplines)
			if worst := team.maxDisciplineCount(); worst > bound {
				warnings = append(warnings, Warning{
					Team:      team.Label,
					Condition: team.Condition,
					Detail: fmt.Sprintf("a discipline appears %d times, target is at most %d per team",
						worst, bound),
				})
			}
		case ConditionSame:
			if disciplines := team.Disciplines(); len(disciplines) > 1 {
				warnings = append(warnings, Warning{
					Team:      team.Label,
					Condition: team.Condition,
					Detail:    fmt.Sprintf("spans %d disciplines instead of one", len(disciplines)),
				})
			}
		}
	}

	return warnings
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
