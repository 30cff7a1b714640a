package assign

import "github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"

// packSame fills teams sequentially, exhausting each discipline group
// before starting the next. When group sizes line up with team capacities
// every team is pure; otherwise a group's tail spills into the next team
// and the composition check flags it.
func packSame(groups []disciplineGroup, caps []int) [][]roster.Student {
	teams := make([][]roster.Student, len(caps))
	cursor := 0

	for _, group := range groups {
		for _, student := range group.students {
			for len(teams[cursor]) >= caps[cursor] {
				cursor++
			}
			teams[cursor] = append(teams[cursor], student)
		}
	}

	return teams
}
