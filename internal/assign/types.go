package assign

import (
	"fmt"
	"sort"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
)

// Condition selects how teams are composed.
type Condition string

const (
	// ConditionCross forms teams whose members are drawn from distinct
	// discipline groups where possible (the treatment condition).
	ConditionCross Condition = "cross"

	// ConditionSame forms teams whose members share a discipline group
	// as far as possible (the control condition).
	ConditionSame Condition = "same"

	// ConditionMixed forms a target number of cross-disciplinary teams and
	// packs the remaining students into same-branch teams, the way the
	// study cohort was actually split.
	ConditionMixed Condition = "mixed"
)

// String returns the string representation of the condition.
func (c Condition) String() string {
	return string(c)
}

// IsValid returns true if this is a recognized condition value.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionCross, ConditionSame, ConditionMixed:
		return true
	default:
		return false
	}
}

// Team is one formed team: a label, the condition it was built under, and
// its members in placement order.
type Team struct {
	Label     string
	Condition Condition
	Members   []roster.Student
}

// Size returns the number of members.
func (t Team) Size() int {
	return len(t.Members)
}

// DisciplineCounts returns how many members each discipline group
// contributes to this team.
func (t Team) DisciplineCounts() map[string]int {
	counts := make(map[string]int)
	for _, member := range t.Members {
		counts[member.Discipline]++
	}
	return counts
}

// Disciplines returns the sorted list of discipline groups present in the team.
func (t Team) Disciplines() []string {
	counts := t.DisciplineCounts()
	disciplines := make([]string, 0, len(counts))
	for discipline := range counts {
		disciplines = append(disciplines, discipline)
	}
	sort.Strings(disciplines)
	return disciplines
}

// maxDisciplineCount returns the largest per-discipline member count.
func (t Team) maxDisciplineCount() int {
	max := 0
	for _, count := range t.DisciplineCounts() {
		if count > max {
			max = count
		}
	}
	return max
}

// Warning reports a team whose realized composition falls short of its
// condition's target: a cross team repeating a discipline beyond the
// feasible bound, or a same-branch team spanning more than one. Warnings
// accompany a successful assignment; they are never errors.
type Warning struct {
	Team      string
	Condition Condition
	Detail    string
}

// String formats the warning for logs and the run summary.
func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.Team, w.Condition, w.Detail)
}

// Assignment is the result of a run: every student placed in exactly one
// team, plus any composition warnings.
type Assignment struct {
	Teams    []Team
	Warnings []Warning
}

// TotalStudents returns the number of students across all teams.
func (a *Assignment) TotalStudents() int {
	total := 0
	for _, team := range a.Teams {
		total += team.Size()
	}
	return total
}

// Rows flattens the assignment into output rows, teams in label order and
// members in placement order.
func (a *Assignment) Rows() []roster.AssignmentRow {
	rows := make([]roster.AssignmentRow, 0, a.TotalStudents())
	for _, team := range a.Teams {
		for _, member := range team.Members {
			rows = append(rows, roster.AssignmentRow{
				StudentID: member.ID,
				TeamID:    team.Label,
				Condition: team.Condition.String(),
			})
		}
	}
	return rows
}
