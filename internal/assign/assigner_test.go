package assign

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
)

type groupSpec struct {
	discipline string
	count      int
}

// cohort builds a roster with the given per-discipline counts, interleaved
// in spec order so input order does not already cluster disciplines.
func cohort(specs ...groupSpec) []roster.Student {
	var students []roster.Student
	serial := 0
	remaining := make([]int, len(specs))
	for i, spec := range specs {
		remaining[i] = spec.count
	}
	for {
		placed := false
		for i, spec := range specs {
			if remaining[i] == 0 {
				continue
			}
			serial++
			students = append(students, roster.Student{
				ID:         fmt.Sprintf("S%03d", serial),
				Discipline: spec.discipline,
			})
			remaining[i]--
			placed = true
		}
		if !placed {
			return students
		}
	}
}

func TestAssignCrossOnePerDiscipline(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 3},
		groupSpec{"AIAGroup", 3},
		groupSpec{"OtherGroup", 3},
	)

	assigner := New(WithTeamCount(3), WithTeamSize(3, 3))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if len(assignment.Teams) != 3 {
		t.Fatalf("got %d teams, want 3", len(assignment.Teams))
	}
	for _, team := range assignment.Teams {
		if team.Size() != 3 {
			t.Errorf("team %s size = %d, want 3", team.Label, team.Size())
		}
		if got := len(team.Disciplines()); got != 3 {
			t.Errorf("team %s has %d disciplines, want 3 (%v)", team.Label, got, team.DisciplineCounts())
		}
	}
	if len(assignment.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", assignment.Warnings)
	}
}

func TestAssignPlacesEveryStudentOnce(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 9},
		groupSpec{"AIAGroup", 7},
		groupSpec{"OtherGroup", 7},
	)

	for _, condition := range []Condition{ConditionCross, ConditionSame, ConditionMixed} {
		t.Run(condition.String(), func(t *testing.T) {
			assigner := New(WithTeamCount(5), WithCondition(condition))
			assignment, err := assigner.Assign(students)
			if err != nil {
				t.Fatalf("Assign() error = %v", err)
			}

			if got := assignment.TotalStudents(); got != len(students) {
				t.Fatalf("placed %d students, want %d", got, len(students))
			}

			seen := make(map[string]string)
			for _, team := range assignment.Teams {
				for _, member := range team.Members {
					if prev, dup := seen[member.ID]; dup {
						t.Errorf("student %s placed in both %s and %s", member.ID, prev, team.Label)
					}
					seen[member.ID] = team.Label
				}
			}
		})
	}
}

func TestAssignBalancedSizes(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 8},
		groupSpec{"AIAGroup", 6},
		groupSpec{"OtherGroup", 3},
	)

	assigner := New(WithTeamCount(4))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	wantSizes := []int{5, 4, 4, 4}
	for i, team := range assignment.Teams {
		if team.Size() != wantSizes[i] {
			t.Errorf("team %s size = %d, want %d", team.Label, team.Size(), wantSizes[i])
		}
	}
}

func TestAssignCrossDiversityBound(t *testing.T) {
	tests := []struct {
		name      string
		specs     []groupSpec
		teamCount int
	}{
		{
			name: "even split",
			specs: []groupSpec{
				{"CompGroup", 8}, {"AIAGroup", 8}, {"OtherGroup", 8},
			},
			teamCount: 6,
		},
		{
			name: "dominant discipline",
			specs: []groupSpec{
				{"CompGroup", 10}, {"AIAGroup", 5}, {"OtherGroup", 5},
			},
			teamCount: 5,
		},
		{
			name: "many small disciplines",
			specs: []groupSpec{
				{"CompGroup", 4}, {"AIAGroup", 4}, {"OtherGroup", 4}, {"MechGroup", 3},
			},
			teamCount: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := cohort(tt.specs...)
			assigner := New(WithTeamCount(tt.teamCount))
			assignment, err := assigner.Assign(students)
			if err != nil {
				t.Fatalf("Assign() error = %v", err)
			}

			disciplines := len(tt.specs)
			for _, team := range assignment.Teams {
				bound := (team.Size() + disciplines - 1) / disciplines
				if worst := team.maxDisciplineCount(); worst > bound {
					t.Errorf("team %s repeats a discipline %d times, bound is %d (%v)",
						team.Label, worst, bound, team.DisciplineCounts())
				}
			}
			if len(assignment.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", assignment.Warnings)
			}
		})
	}
}

func TestAssignSamePureTeams(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 8},
		groupSpec{"AIAGroup", 4},
	)

	assigner := New(WithTeamCount(3), WithCondition(ConditionSame), WithTeamSize(4, 4))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	for _, team := range assignment.Teams {
		if got := len(team.Disciplines()); got != 1 {
			t.Errorf("team %s spans %d disciplines, want 1 (%v)", team.Label, got, team.DisciplineCounts())
		}
	}
	if len(assignment.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", assignment.Warnings)
	}
}

func TestAssignSameSpillWarning(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 7},
		groupSpec{"AIAGroup", 3},
	)

	assigner := New(WithTeamCount(2), WithCondition(ConditionSame))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if len(assignment.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(assignment.Warnings), assignment.Warnings)
	}
	warning := assignment.Warnings[0]
	if warning.Condition != ConditionSame {
		t.Errorf("warning condition = %s, want same", warning.Condition)
	}
	if warning.Team != "T02" {
		t.Errorf("warning team = %s, want T02", warning.Team)
	}
}

func TestAssignCrossWarningWhenDiversityInfeasible(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 5},
		groupSpec{"AIAGroup", 1},
	)

	assigner := New(WithTeamCount(2), WithTeamSize(3, 3))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if len(assignment.Warnings) == 0 {
		t.Fatal("expected a diversity warning, got none")
	}
	for _, warning := range assignment.Warnings {
		if warning.Condition != ConditionCross {
			t.Errorf("warning condition = %s, want cross", warning.Condition)
		}
	}
}

func TestAssignDeterminism(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 10},
		groupSpec{"AIAGroup", 8},
		groupSpec{"OtherGroup", 6},
	)

	run := func(seed int64) []roster.AssignmentRow {
		t.Helper()
		assigner := New(WithTeamCount(6), WithSeed(seed))
		assignment, err := assigner.Assign(students)
		if err != nil {
			t.Fatalf("Assign() error = %v", err)
		}
		return assignment.Rows()
	}

	if !reflect.DeepEqual(run(42), run(42)) {
		t.Error("two runs with the same seed differ")
	}
	if !reflect.DeepEqual(run(-1), run(-1)) {
		t.Error("two unseeded runs differ")
	}
}

func TestAssignSeedLeavesInputUntouched(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 6},
		groupSpec{"AIAGroup", 6},
	)
	before := append([]roster.Student(nil), students...)

	assigner := New(WithTeamCount(3), WithSeed(7))
	if _, err := assigner.Assign(students); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if !reflect.DeepEqual(students, before) {
		t.Error("Assign() reordered the caller's slice")
	}
}

func TestAssignConfigErrors(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 6},
		groupSpec{"AIAGroup", 6},
	)

	tests := []struct {
		name     string
		opts     []Option
		students []roster.Student
		sentinel error
	}{
		{
			name:     "zero team count",
			opts:     []Option{WithTeamCount(0)},
			students: students,
			sentinel: errors.ErrTeamCountNonPositive,
		},
		{
			name:     "negative team count",
			opts:     []Option{WithTeamCount(-2)},
			students: students,
			sentinel: errors.ErrTeamCountNonPositive,
		},
		{
			name:     "roster too small",
			opts:     []Option{WithTeamCount(5)},
			students: students,
			sentinel: errors.ErrRosterTooSmall,
		},
		{
			name:     "roster too large",
			opts:     []Option{WithTeamCount(2)},
			students: students,
			sentinel: errors.ErrRosterTooLarge,
		},
		{
			name:     "empty roster",
			opts:     []Option{WithTeamCount(1)},
			students: nil,
			sentinel: errors.ErrRosterTooSmall,
		},
		{
			name:     "unknown condition",
			opts:     []Option{WithTeamCount(3), WithCondition(Condition("random"))},
			students: students,
			sentinel: errors.ErrUnknownCondition,
		},
		{
			name:     "cross teams exceed total",
			opts:     []Option{WithTeamCount(3), WithCondition(ConditionMixed), WithCrossTeams(4)},
			students: students,
			sentinel: errors.ErrCrossTeamsExceedTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assigner := New(tt.opts...)
			assignment, err := assigner.Assign(tt.students)
			if err == nil {
				t.Fatal("expected an error, got none")
			}
			if assignment != nil {
				t.Error("got a partial assignment alongside the error")
			}
			if !errors.IsConfigError(err) {
				t.Errorf("IsConfigError(%v) = false", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match %v", err, tt.sentinel)
			}
		})
	}
}

func TestAssignMixedTagsTeams(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 8},
		groupSpec{"AIAGroup", 8},
		groupSpec{"OtherGroup", 8},
	)

	tests := []struct {
		name      string
		opts      []Option
		wantCross int
	}{
		{
			name:      "default is half",
			opts:      []Option{WithTeamCount(6), WithCondition(ConditionMixed)},
			wantCross: 3,
		},
		{
			name:      "explicit target",
			opts:      []Option{WithTeamCount(6), WithCondition(ConditionMixed), WithCrossTeams(2)},
			wantCross: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assigner := New(tt.opts...)
			assignment, err := assigner.Assign(students)
			if err != nil {
				t.Fatalf("Assign() error = %v", err)
			}

			var cross, same int
			for i, team := range assignment.Teams {
				switch team.Condition {
				case ConditionCross:
					cross++
					if i >= tt.wantCross {
						t.Errorf("team %s tagged cross after the cross block", team.Label)
					}
				case ConditionSame:
					same++
				}
			}
			if cross != tt.wantCross {
				t.Errorf("got %d cross teams, want %d", cross, tt.wantCross)
			}
			if cross+same != len(assignment.Teams) {
				t.Errorf("tags cover %d of %d teams", cross+same, len(assignment.Teams))
			}
		})
	}
}

func TestAssignMixedCrossTeamsAreDiverse(t *testing.T) {
	students := cohort(
		groupSpec{"CompGroup", 10},
		groupSpec{"AIAGroup", 5},
		groupSpec{"OtherGroup", 5},
	)

	assigner := New(WithTeamCount(5), WithCondition(ConditionMixed), WithCrossTeams(2))
	assignment, err := assigner.Assign(students)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	for _, team := range assignment.Teams[:2] {
		if got := len(team.Disciplines()); got < 2 {
			t.Errorf("cross team %s has %d disciplines, want at least 2 (%v)",
				team.Label, got, team.DisciplineCounts())
		}
	}
}

func TestDeriveTeamCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		sizeMax int
		want    int
	}{
		{name: "exact multiple", n: 20, sizeMax: 5, want: 4},
		{name: "remainder adds a team", n: 17, sizeMax: 5, want: 4},
		{name: "fewer students than a team", n: 3, sizeMax: 5, want: 1},
		{name: "empty roster", n: 0, sizeMax: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTeamCount(tt.n, tt.sizeMax); got != tt.want {
				t.Errorf("DeriveTeamCount(%d, %d) = %d, want %d", tt.n, tt.sizeMax, got, tt.want)
			}
		})
	}
}

func TestCapacities(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		teamCount int
		want      []int
	}{
		{name: "even", n: 12, teamCount: 3, want: []int{4, 4, 4}},
		{name: "one extra", n: 13, teamCount: 3, want: []int{5, 4, 4}},
		{name: "two extra", n: 14, teamCount: 3, want: []int{5, 5, 4}},
		{name: "single team", n: 4, teamCount: 1, want: []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capacities(tt.n, tt.teamCount); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("capacities(%d, %d) = %v, want %v", tt.n, tt.teamCount, got, tt.want)
			}
		})
	}
}
