package types

import (
	"encoding/json"
	"fmt"
)

// CoverLetterDraft is the structured paragraph set produced by cover letter
// synthesis. All five fields are mandatory: a draft missing any one of them
// is invalid as a whole and the caller substitutes the fixed fallback.
// Mandatory-field checking goes through MissingFields, not struct tags.
type CoverLetterDraft struct {
	Intro          string   `json:"intro"`
	BodyParagraphs []string `json:"body_paragraphs"`
	Closing        string   `json:"closing"`
	CompanyName    string   `json:"company_name"`
	RecipientName  string   `json:"recipient_name"`
}

// UnmarshalJSON decodes a draft, coercing a single-string body_paragraphs
// value to a one-element list. Generation services occasionally return a
// bare string where a list was requested.
func (d *CoverLetterDraft) UnmarshalJSON(data []byte) error {
	type alias struct {
		Intro          string          `json:"intro"`
		BodyParagraphs json.RawMessage `json:"body_paragraphs"`
		Closing        string          `json:"closing"`
		CompanyName    string          `json:"company_name"`
		RecipientName  string          `json:"recipient_name"`
	}

	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Intro = raw.Intro
	d.Closing = raw.Closing
	d.CompanyName = raw.CompanyName
	d.RecipientName = raw.RecipientName
	d.BodyParagraphs = nil

	if len(raw.BodyParagraphs) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw.BodyParagraphs, &list); err == nil {
		d.BodyParagraphs = list
		return nil
	}

	var single string
	if err := json.Unmarshal(raw.BodyParagraphs, &single); err == nil {
		d.BodyParagraphs = []string{single}
		return nil
	}

	return fmt.Errorf("body_paragraphs is neither a string list nor a string")
}

// MissingFields reports which of the five mandatory fields are absent
func (d *CoverLetterDraft) MissingFields() []string {
	var missing []string
	if d.Intro == "" {
		missing = append(missing, "intro")
	}
	if len(d.BodyParagraphs) == 0 {
		missing = append(missing, "body_paragraphs")
	}
	if d.Closing == "" {
		missing = append(missing, "closing")
	}
	if d.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if d.RecipientName == "" {
		missing = append(missing, "recipient_name")
	}
	return missing
}

// Validate checks that every mandatory field is populated
func (d *CoverLetterDraft) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("cover letter draft missing required fields: %v", missing)
	}
	return nil
}
