package assign

import "github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/roster"

// dealCross spreads each discipline group across the teams like dealing
// cards: one student per team, moving a shared cursor through the teams and
// skipping teams already at capacity. Groups are dealt largest first, so
// the biggest discipline claims at most ceil(len/teams) seats in any team
// and smaller groups fill the gaps. The cursor survives between groups,
// which keeps small groups from piling up in the first team.
func dealCross(groups []disciplineGroup, caps []int) [][]roster.Student {
	teams := make([][]roster.Student, len(caps))
	cursor := 0

	for _, group := range groups {
		for _, student := range group.students {
			for len(teams[cursor]) >= caps[cursor] {
				cursor = (cursor + 1) % len(caps)
			}
			teams[cursor] = append(teams[cursor], student)
			cursor = (cursor + 1) % len(caps)
		}
	}

	return teams
}
