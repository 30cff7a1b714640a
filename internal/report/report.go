// Package report renders run summaries for the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/assign"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"
	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

const (
	ruleWidth = 50

	// Custom group files can declare arbitrarily long labels; cap them so
	// the per-team make-up column stays readable.
	labelWidth = 24

	// makeupWidth bounds the whole styled make-up cell.
	makeupWidth = 60
)

func rule() string {
	return strings.Repeat("─", ruleWidth)
}

// Summary renders an assignment for stdout: one line per team with its
// condition, size, and discipline make-up, followed by any composition
// warnings.
func Summary(assignment *assign.Assignment) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TEAM ASSIGNMENT"))
	b.WriteString("\n")
	b.WriteString(rule())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Students: %d\n", assignment.TotalStudents())
	fmt.Fprintf(&b, "Teams:    %d\n", len(assignment.Teams))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("TEAMS"))
	b.WriteString("\n")
	b.WriteString(rule())
	b.WriteString("\n")
	for _, team := range assignment.Teams {
		cell := util.TruncateANSI(mutedStyle.Render(makeup(team)), makeupWidth)
		fmt.Fprintf(&b, "%s  %-5s  %d members  %s\n",
			team.Label, team.Condition, team.Size(), cell)
	}

	if len(assignment.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("WARNINGS"))
		b.WriteString("\n")
		b.WriteString(rule())
		b.WriteString("\n")
		for _, warning := range assignment.Warnings {
			b.WriteString(warningStyle.Render("⚠ " + warning.String()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// makeup formats a team's per-discipline counts, largest first with ties
// broken alphabetically.
func makeup(team assign.Team) string {
	counts := team.DisciplineCounts()
	disciplines := make([]string, 0, len(counts))
	for discipline := range counts {
		disciplines = append(disciplines, discipline)
	}
	sort.Slice(disciplines, func(i, j int) bool {
		if counts[disciplines[i]] != counts[disciplines[j]] {
			return counts[disciplines[i]] > counts[disciplines[j]]
		}
		return disciplines[i] < disciplines[j]
	})

	parts := make([]string, len(disciplines))
	for i, discipline := range disciplines {
		parts[i] = fmt.Sprintf("%s×%d", util.Truncate(discipline, labelWidth), counts[discipline])
	}
	return strings.Join(parts, " ")
}

// RosterCheck renders the result of validating a roster without assigning:
// total students and the per-discipline breakdown.
func RosterCheck(path string, students []roster.Student) string {
	counts := make(map[string]int)
	for _, student := range students {
		counts[student.Discipline]++
	}
	disciplines := make([]string, 0, len(counts))
	for discipline := range counts {
		disciplines = append(disciplines, discipline)
	}
	sort.Slice(disciplines, func(i, j int) bool {
		if counts[disciplines[i]] != counts[disciplines[j]] {
			return counts[disciplines[i]] > counts[disciplines[j]]
		}
		return disciplines[i] < disciplines[j]
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("ROSTER CHECK"))
	b.WriteString("\n")
	b.WriteString(rule())
	b.WriteString("\n")
	fmt.Fprintf(&b, "File:     %s\n", path)
	fmt.Fprintf(&b, "Students: %d\n", len(students))
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("DISCIPLINE GROUPS"))
	b.WriteString("\n")
	b.WriteString(rule())
	b.WriteString("\n")
	for _, discipline := range disciplines {
		fmt.Fprintf(&b, "%-12s %d\n", util.Truncate(discipline, labelWidth), counts[discipline])
	}

	return b.String()
}
