package assign

import "github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"

// fillMixed builds the first crossTeams teams cross-disciplinary and packs
// the remaining students into same-branch teams. Cross teams draw greedily:
// each seat takes a student from the largest remaining group not yet in the
// team, falling back to the largest group outright once every remaining
// discipline is represented. Ties go to the group dealt earlier, keeping
// the result deterministic. What is left over stays clustered by
// discipline, which is exactly what the same-branch teams want.
func fillMixed(groups []disciplineGroup, caps []int, crossTeams int) [][]roster.Student {
	remaining := make([]disciplineGroup, len(groups))
	for i, group := range groups {
		remaining[i] = disciplineGroup{
			name:     group.name,
			students: append([]roster.Student(nil), group.students...),
		}
	}

	teams := make([][]roster.Student, len(caps))

	for t := 0; t < crossTeams; t++ {
		seen := make(map[string]bool)
		for len(teams[t]) < caps[t] {
			i := pickGroup(remaining, seen)
			if i < 0 {
				break
			}
			group := &remaining[i]
			teams[t] = append(teams[t], group.students[0])
			seen[group.name] = true
			group.students = group.students[1:]
		}
	}

	leftover := packSame(remaining, caps[crossTeams:])
	for i, members := range leftover {
		teams[crossTeams+i] = members
	}

	return teams
}

// pickGroup returns the index of the largest non-empty group whose
// discipline is not yet seen, or the largest non-empty group when all
// remaining disciplines are seen. Returns -1 when every group is empty.
func pickGroup(groups []disciplineGroup, seen map[string]bool) int {
	best, bestFresh := -1, -1
	for i := range groups {
		if len(groups[i].students) == 0 {
			continue
		}
		if best < 0 || len(groups[i].students) > len(groups[best].students) {
			best = i
		}
		if !seen[groups[i].name] {
			if bestFresh < 0 || len(groups[i].students) > len(groups[bestFresh].students) {
				bestFresh = i
			}
		}
	}
	if bestFresh >= 0 {
		return bestFresh
	}
	return best
}
