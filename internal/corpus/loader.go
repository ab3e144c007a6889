// Package corpus loads the five source collections (personal info,
// education, experience, projects, skills) from a directory of JSON files
// and assembles them into a single in-memory document. Every file is
// optional; a missing file simply leaves its section empty. Malformed
// files are errors, not skips.
package corpus

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// Source file names expected under the corpus directory
const (
	PersonalInfoFile = "personal_info.json"
	EducationFile    = "education.json"
	ExperienceFile   = "experience.json"
	ProjectsFile     = "projects.json"
	SkillsFile       = "skills.json"
)

// Loader reads source collections from a directory and validates them
type Loader struct {
	dir      string
	validate *validator.Validate
}

// NewLoader creates a Loader rooted at the given source directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:      dir,
		validate: validator.New(),
	}
}

// Load reads every source file that exists under the directory and returns
// the assembled document. Collection files accept both flat layouts
// (a bare JSON array) and nested layouts (an object wrapping the array
// under its collection key, e.g. {"experience": [...]}).
func (l *Loader) Load() (*types.Resume, error) {
	resume := &types.Resume{}

	if data, ok, err := l.readFile(PersonalInfoFile); err != nil {
		return nil, err
	} else if ok {
		var info types.PersonalInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, &LoadError{Path: l.path(PersonalInfoFile), Cause: err}
		}
		resume.PersonalInfo = &info
	}

	if data, ok, err := l.readFile(EducationFile); err != nil {
		return nil, err
	} else if ok {
		var education []types.Education
		if err := l.decodeCollection(EducationFile, "education", data, &education); err != nil {
			return nil, err
		}
		resume.Education = education
	}

	if data, ok, err := l.readFile(ExperienceFile); err != nil {
		return nil, err
	} else if ok {
		var experience []types.ExperienceEntry
		if err := l.decodeCollection(ExperienceFile, "experience", data, &experience); err != nil {
			return nil, err
		}
		resume.Experience = experience
	}

	if data, ok, err := l.readFile(ProjectsFile); err != nil {
		return nil, err
	} else if ok {
		var projects []types.ProjectEntry
		if err := l.decodeCollection(ProjectsFile, "projects", data, &projects); err != nil {
			return nil, err
		}
		resume.Projects = projects
	}

	if data, ok, err := l.readFile(SkillsFile); err != nil {
		return nil, err
	} else if ok {
		skills, err := l.decodeSkills(data)
		if err != nil {
			return nil, err
		}
		resume.Skills = skills
	}

	if err := l.validate.Struct(resume); err != nil {
		return nil, &ValidationError{Message: "source data failed validation", Cause: err}
	}

	return resume, nil
}

// readFile returns the file contents and whether the file exists.
// Absence is not an error.
func (l *Loader) readFile(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(l.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &LoadError{Path: l.path(name), Cause: err}
	}
	return data, true, nil
}

// decodeCollection handles the flat-vs-nested layout split. A document
// starting with '[' is decoded directly; otherwise the array is expected
// under the collection key.
func (l *Loader) decodeCollection(name, key string, data []byte, out any) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return &LoadError{Path: l.path(name), Cause: err}
		}
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return &LoadError{Path: l.path(name), Cause: err}
	}
	raw, ok := wrapper[key]
	if !ok {
		// Nested object without the collection key yields an empty section
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &LoadError{Path: l.path(name), Cause: err}
	}
	return nil
}

// decodeSkills accepts both a bare category object and one nested under a
// "skills" key. A document carrying any known category key at the top
// level is taken as the category object itself.
func (l *Loader) decodeSkills(data []byte) (*types.Skills, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &LoadError{Path: l.path(SkillsFile), Cause: err}
	}

	payload := data
	topLevel := false
	for _, category := range types.SkillCategories {
		if _, ok := probe[category]; ok {
			topLevel = true
			break
		}
	}
	if !topLevel {
		raw, ok := probe["skills"]
		if !ok {
			return &types.Skills{}, nil
		}
		payload = raw
	}

	var skills types.Skills
	if err := json.Unmarshal(payload, &skills); err != nil {
		return nil, &LoadError{Path: l.path(SkillsFile), Cause: err}
	}
	return &skills, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}
