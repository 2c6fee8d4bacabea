package resolve

import (
	"github.com/TechXTT/cimgen/internal/model"
)

// recommendProfile picks the profile a class should be serialized under.
//
// Attributes defined in a single profile do not vote: they never force the
// class to be split across files.
func recommendProfile(classes *model.ClassMap, c *model.ClassDefinition) string {
	if len(c.Origins) == 1 {
		return c.Origins[0]
	}

	votes := make(map[string]int)
	chain := append([]string{c.Name}, c.Superclasses...)
	for _, name := range chain {
		cls, ok := classes.Get(name)
		if !ok {
			break
		}
		for _, a := range cls.Attributes {
			if len(a.Origins) < 2 {
				continue
			}
			for _, p := range a.Origins {
				if c.HasOrigin(p) {
					votes[p]++
				}
			}
		}
	}

	if len(votes) == 0 {
		if sorted := model.SortProfiles(c.Origins); len(sorted) > 0 {
			return sorted[0]
		}
		return ""
	}

	best := 0
	for _, n := range votes {
		if n > best {
			best = n
		}
	}
	var top []string
	for p, n := range votes {
		if n == best {
			top = append(top, p)
		}
	}
	return model.SortProfiles(top)[0]
}

func recommendProfiles(classes *model.ClassMap) {
	for _, c := range classes.Classes() {
		c.Recommended = recommendProfile(classes, c)
	}
}
