package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// Template file names expected under the template directory
const (
	ResumeTemplate      = "resume.tex"
	CoverLetterTemplate = "cover_letter.tex"
)

// sectionTemplates are parsed alongside the resume template so it can
// include them by name.
var sectionTemplates = []string{
	"heading.tex",
	"education.tex",
	"experience.tex",
	"projects.tex",
	"skills.tex",
}

// Renderer renders LaTeX documents from named template files
type Renderer struct {
	templateDir string
}

// NewRenderer creates a Renderer reading templates from dir
func NewRenderer(dir string) *Renderer {
	return &Renderer{templateDir: dir}
}

// ResumeData is the structure handed to the resume templates. All string
// fields are pre-escaped; list fields that templates print inline carry a
// comma-joined display form alongside the raw list.
type ResumeData struct {
	Name     string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	GitHub   string
	Website  string

	Education  []EducationData
	Experience []ExperienceData
	Projects   []ProjectData
	Skills     SkillsData

	HasEducation  bool
	HasExperience bool
	HasProjects   bool
	HasSkills     bool
}

// EducationData is one education entry prepared for templating
type EducationData struct {
	Institution       string
	Degree            string
	Location          string
	Dates             string
	GPA               string
	CourseworkDisplay string
}

// ExperienceData is one experience entry prepared for templating
type ExperienceData struct {
	Company  string
	Role     string
	Location string
	Dates    string
	Bullets  []string
}

// ProjectData is one project entry prepared for templating
type ProjectData struct {
	Name        string
	TechDisplay string
	Link        string
	Bullets     []string
}

// SkillsData carries the comma-joined category lines
type SkillsData struct {
	Languages    string
	Technologies string
	Concepts     string
}

// CoverLetterData is the structure handed to the cover letter template
type CoverLetterData struct {
	Date           string
	Name           string
	RecipientName  string
	CompanyName    string
	Intro          string
	BodyParagraphs []string
	Closing        string
}

// RenderResume renders the full resume document from the template set
func (r *Renderer) RenderResume(resume *types.Resume) (string, error) {
	data := BuildResumeData(resume)

	paths := make([]string, 0, len(sectionTemplates)+1)
	paths = append(paths, filepath.Join(r.templateDir, ResumeTemplate))
	for _, name := range sectionTemplates {
		paths = append(paths, filepath.Join(r.templateDir, name))
	}

	tmpl, err := parseTemplates(paths...)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, ResumeTemplate, data); err != nil {
		return "", &TemplateError{Message: "failed to execute resume template", Cause: err}
	}
	return out.String(), nil
}

// RenderCoverLetter renders the cover letter document from a validated
// draft. date is printed verbatim in the letterhead.
func (r *Renderer) RenderCoverLetter(draft types.CoverLetterDraft, info *types.PersonalInfo, date string) (string, error) {
	name := ""
	if info != nil {
		name = info.Name
	}

	data := CoverLetterData{
		Date:          EscapeLaTeX(date),
		Name:          EscapeLaTeX(name),
		RecipientName: EscapeLaTeX(draft.RecipientName),
		CompanyName:   EscapeLaTeX(draft.CompanyName),
		Intro:         EscapeLaTeX(draft.Intro),
		Closing:       EscapeLaTeX(draft.Closing),
	}
	for _, paragraph := range draft.BodyParagraphs {
		data.BodyParagraphs = append(data.BodyParagraphs, EscapeLaTeX(paragraph))
	}

	tmpl, err := parseTemplates(filepath.Join(r.templateDir, CoverLetterTemplate))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, CoverLetterTemplate, data); err != nil {
		return "", &TemplateError{Message: "failed to execute cover letter template", Cause: err}
	}
	return out.String(), nil
}

// BuildResumeData escapes the document and precomputes the joined display
// fields the section templates print inline.
func BuildResumeData(resume *types.Resume) *ResumeData {
	data := &ResumeData{}

	if resume.PersonalInfo != nil {
		data.Name = EscapeLaTeX(resume.PersonalInfo.Name)
		data.Email = EscapeLaTeX(resume.PersonalInfo.Email)
		data.Phone = EscapeLaTeX(resume.PersonalInfo.Phone)
		data.Location = EscapeLaTeX(resume.PersonalInfo.Location)
		data.LinkedIn = EscapeLaTeX(resume.PersonalInfo.LinkedIn)
		data.GitHub = EscapeLaTeX(resume.PersonalInfo.GitHub)
		data.Website = EscapeLaTeX(resume.PersonalInfo.Website)
	}

	for _, edu := range resume.Education {
		data.Education = append(data.Education, EducationData{
			Institution:       EscapeLaTeX(edu.Institution),
			Degree:            EscapeLaTeX(edu.Degree),
			Location:          EscapeLaTeX(edu.Location),
			Dates:             formatDates(edu.StartDate, edu.EndDate),
			GPA:               EscapeLaTeX(edu.GPA),
			CourseworkDisplay: joinDisplay(edu.RelevantCoursework),
		})
	}

	for _, exp := range resume.Experience {
		data.Experience = append(data.Experience, ExperienceData{
			Company:  EscapeLaTeX(exp.Company),
			Role:     EscapeLaTeX(exp.Role),
			Location: EscapeLaTeX(exp.Location),
			Dates:    formatDates(exp.StartDate, exp.EndDate),
			Bullets:  escapeList(exp.Bullets),
		})
	}

	for _, proj := range resume.Projects {
		data.Projects = append(data.Projects, ProjectData{
			Name:        EscapeLaTeX(proj.Name),
			TechDisplay: joinDisplay(proj.Tech),
			Link:        EscapeLaTeX(proj.Link),
			Bullets:     escapeList(proj.Bullets),
		})
	}

	if resume.Skills != nil {
		data.Skills = SkillsData{
			Languages:    joinDisplay(resume.Skills.Languages),
			Technologies: joinDisplay(resume.Skills.Technologies),
			Concepts:     joinDisplay(resume.Skills.Concepts),
		}
		data.HasSkills = data.Skills.Languages != "" || data.Skills.Technologies != "" || data.Skills.Concepts != ""
	}

	data.HasEducation = len(data.Education) > 0
	data.HasExperience = len(data.Experience) > 0
	data.HasProjects = len(data.Projects) > 0

	return data
}

// parseTemplates reads and parses template files, registering the escape
// function for use inside templates.
func parseTemplates(paths ...string) (*template.Template, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", path),
				Cause:   err,
			}
		}
	}

	tmpl, err := template.New(filepath.Base(paths[0])).Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
	}).ParseFiles(paths...)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	return tmpl, nil
}

func formatDates(start, end string) string {
	start = EscapeLaTeX(start)
	end = EscapeLaTeX(end)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " -- Present"
	case start == "":
		return end
	default:
		return start + " -- " + end
	}
}

func joinDisplay(list []string) string {
	if len(list) == 0 {
		return ""
	}
	escaped := escapeList(list)
	return strings.Join(escaped, ", ")
}

func escapeList(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	escaped := make([]string, len(list))
	for i, item := range list {
		escaped[i] = EscapeLaTeX(item)
	}
	return escaped
}
