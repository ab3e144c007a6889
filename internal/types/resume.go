// Package types provides type definitions for structured data used throughout the resume-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Priority is the declared importance label on a candidate resume item.
// It controls guaranteed-inclusion vs. rankable status during selection.
type Priority string

// Priority levels recognized on experience and project entries
const (
	// PriorityHigh items are always selected (never ranked)
	PriorityHigh Priority = "high"
	// PriorityMedium items enter the ranking pool first
	PriorityMedium Priority = "medium"
	// PriorityLow items enter the ranking pool after medium
	PriorityLow Priority = "low"
	// PriorityUnset marks items that carry no priority field
	PriorityUnset Priority = ""
)

// PersonalInfo holds the always-included contact block
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Education represents a single education entry
type Education struct {
	Institution        string   `json:"institution" validate:"required"`
	Degree             string   `json:"degree,omitempty"`
	Location           string   `json:"location,omitempty"`
	StartDate          string   `json:"start_date,omitempty"`
	EndDate            string   `json:"end_date,omitempty"`
	GPA                string   `json:"gpa,omitempty"`
	RelevantCoursework []string `json:"relevant_coursework,omitempty"`
}

// ExperienceEntry represents a single work experience with its bullet list
type ExperienceEntry struct {
	Company   string   `json:"company" validate:"required"`
	Role      string   `json:"role,omitempty"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
	Priority  Priority `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

// ProjectEntry represents a single project with its bullet list
type ProjectEntry struct {
	Name     string   `json:"name" validate:"required"`
	Tech     []string `json:"tech,omitempty"`
	Link     string   `json:"link,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
	Priority Priority `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

// GetPriority returns the declared priority, mapping an absent field to PriorityUnset
func (e ExperienceEntry) GetPriority() Priority { return e.Priority }

// GetPriority returns the declared priority, mapping an absent field to PriorityUnset
func (p ProjectEntry) GetPriority() Priority { return p.Priority }

// SkillCategories are the three skill groupings the pipeline filters independently
var SkillCategories = []string{"languages", "technologies", "concepts"}

// Skills holds the per-category skill lists. A nil slice means the category
// was absent from the source (or not list-typed) and must be skipped by the
// filter; an empty non-nil slice is a present-but-empty category.
type Skills struct {
	Languages    []string `json:"languages,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Concepts     []string `json:"concepts,omitempty"`
}

// UnmarshalJSON accepts loosely-typed skills documents: categories whose
// values are not arrays of strings are dropped rather than failing the load.
func (s *Skills) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decode := func(key string) []string {
		msg, ok := raw[key]
		if !ok {
			return nil
		}
		var list []string
		if err := json.Unmarshal(msg, &list); err != nil {
			return nil
		}
		if list == nil {
			list = []string{}
		}
		return list
	}

	s.Languages = decode("languages")
	s.Technologies = decode("technologies")
	s.Concepts = decode("concepts")
	return nil
}

// Category returns the skill list for a named category. The boolean reports
// whether the category was present in the source document.
func (s *Skills) Category(name string) ([]string, bool) {
	switch name {
	case "languages":
		return s.Languages, s.Languages != nil
	case "technologies":
		return s.Technologies, s.Technologies != nil
	case "concepts":
		return s.Concepts, s.Concepts != nil
	default:
		return nil, false
	}
}

// SetCategory assigns the skill list for a named category
func (s *Skills) SetCategory(name string, list []string) {
	switch name {
	case "languages":
		s.Languages = list
	case "technologies":
		s.Technologies = list
	case "concepts":
		s.Concepts = list
	}
}

// Resume is the combined in-memory document assembled from the five source
// collections. It is also the payload of the step1/step2 stage artifacts.
type Resume struct {
	PersonalInfo *PersonalInfo     `json:"personal_info,omitempty"`
	Education    []Education       `json:"education,omitempty" validate:"omitempty,dive"`
	Experience   []ExperienceEntry `json:"experience,omitempty" validate:"omitempty,dive"`
	Projects     []ProjectEntry    `json:"projects,omitempty" validate:"omitempty,dive"`
	Skills       *Skills           `json:"skills,omitempty"`
}
