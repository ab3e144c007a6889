package ranking

import "github.com/jonathan/resume-pipeline/internal/types"

func experiencePool(companies ...string) []types.ExperienceEntry {
	pool := make([]types.ExperienceEntry, 0, len(companies))
	for _, company := range companies {
		pool = append(pool, types.ExperienceEntry{
			Company: company,
			Role:    "Engineer",
			Bullets: []string{"Did work at " + company},
		})
	}
	return pool
}

func projectPool(names ...string) []types.ProjectEntry {
	pool := make([]types.ProjectEntry, 0, len(names))
	for _, name := range names {
		pool = append(pool, types.ProjectEntry{
			Name:    name,
			Tech:    []string{"Go"},
			Bullets: []string{"Built " + name},
		})
	}
	return pool
}
