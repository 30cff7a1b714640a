package roster

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunny-nanade/xr-education-cross-disciplinary-teams/internal/errors"
)

// GroupMap collapses fine-grained programme labels into the discipline
// groups the assignment balances over. Rosters list programmes like
// "B Tech Computer" or "MBA Tech AI"; the study treats several of them as
// one discipline for team-formation purposes.
type GroupMap struct {
	byProgramme map[string]string
	fallback    string
}

// DefaultGroupMap returns the mapping used for the study cohort.
func DefaultGroupMap() GroupMap {
	return buildGroupMap(map[string][]string{
		"CompGroup": {
			"B Tech Computer",
			"MBA Tech Computer",
			"B Tech IT",
			"MBA Tech IT",
			"B Tech Data Science",
		},
		"AIAGroup": {
			"B Tech AI",
			"MBA Tech AI",
			"B Tech Cyber Security",
		},
		"OtherGroup": {
			"B Tech EXTC",
			"B Tech Mechanical",
		},
	}, "OtherGroup")
}

// groupMapFile is the YAML shape of a mapping override:
//
//	groups:
//	  CompGroup: ["B Tech Computer", "B Tech IT"]
//	  AIAGroup: ["B Tech AI"]
//	default: OtherGroup
type groupMapFile struct {
	Groups  map[string][]string `yaml:"groups"`
	Default string              `yaml:"default"`
}

// LoadGroupMap reads a mapping override from a YAML file. The file's own
// default wins over the fallback argument when both are set. A file that
// declares no groups is rejected: silently mapping every programme to the
// fallback would defeat the balancing.
func LoadGroupMap(path, fallback string) (GroupMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GroupMap{}, errors.NewConfigError(
			fmt.Sprintf("failed to read group mapping %s", path),
			errors.ErrGroupMapInvalid,
		).WithParameter("groups.file").WithValue(path)
	}

	var file groupMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return GroupMap{}, errors.NewConfigError(
			fmt.Sprintf("failed to parse group mapping %s: %v", path, err),
			errors.ErrGroupMapInvalid,
		).WithParameter("groups.file").WithValue(path)
	}

	if len(file.Groups) == 0 {
		return GroupMap{}, errors.NewConfigError(
			fmt.Sprintf("group mapping %s declares no groups", path),
			errors.ErrGroupMapInvalid,
		).WithParameter("groups.file").WithValue(path)
	}

	if file.Default != "" {
		fallback = file.Default
	}

	return buildGroupMap(file.Groups, fallback), nil
}

func buildGroupMap(groups map[string][]string, fallback string) GroupMap {
	byProgramme := make(map[string]string)
	for group, programmes := range groups {
		for _, programme := range programmes {
			byProgramme[normalizeProgramme(programme)] = group
		}
	}
	return GroupMap{byProgramme: byProgramme, fallback: fallback}
}

// Resolve maps a raw programme label to its discipline group. Programmes
// absent from the mapping land in the fallback group; the roster loader has
// already rejected empty labels by the time Resolve runs.
func (g GroupMap) Resolve(programme string) string {
	if group, ok := g.byProgramme[normalizeProgramme(programme)]; ok {
		return group
	}
	return g.fallback
}

// Fallback returns the group label for unmapped programmes.
func (g GroupMap) Fallback() string {
	return g.fallback
}

// Groups returns the sorted list of group labels the mapping can produce,
// always including the fallback.
func (g GroupMap) Groups() []string {
	set := map[string]bool{g.fallback: true}
	for _, group := range g.byProgramme {
		set[group] = true
	}

	groups := make([]string, 0, len(set))
	for group := range set {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

func normalizeProgramme(programme string) string {
	return strings.ToLower(strings.Join(strings.Fields(programme), " "))
}
