package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverLetterDraft_UnmarshalJSON_CoercesStringBody(t *testing.T) {
	input := `{
		"intro": "Opening",
		"body_paragraphs": "A single paragraph",
		"closing": "Closing",
		"company_name": "Acme",
		"recipient_name": "Hiring Manager"
	}`

	var draft CoverLetterDraft
	require.NoError(t, json.Unmarshal([]byte(input), &draft))
	assert.Equal(t, []string{"A single paragraph"}, draft.BodyParagraphs)
	assert.NoError(t, draft.Validate())
}

func TestCoverLetterDraft_UnmarshalJSON_ListBody(t *testing.T) {
	input := `{
		"intro": "Opening",
		"body_paragraphs": ["First", "Second"],
		"closing": "Closing",
		"company_name": "Acme",
		"recipient_name": "Hiring Manager"
	}`

	var draft CoverLetterDraft
	require.NoError(t, json.Unmarshal([]byte(input), &draft))
	assert.Equal(t, []string{"First", "Second"}, draft.BodyParagraphs)
}

func TestCoverLetterDraft_UnmarshalJSON_BadBodyType(t *testing.T) {
	input := `{"intro": "x", "body_paragraphs": 42, "closing": "y", "company_name": "z", "recipient_name": "w"}`

	var draft CoverLetterDraft
	err := json.Unmarshal([]byte(input), &draft)
	assert.Error(t, err)
}

func TestCoverLetterDraft_Validate_MissingClosing(t *testing.T) {
	draft := CoverLetterDraft{
		Intro:          "Opening",
		BodyParagraphs: []string{"Body"},
		CompanyName:    "Acme",
		RecipientName:  "Hiring Manager",
	}

	err := draft.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing")
	assert.Equal(t, []string{"closing"}, draft.MissingFields())
}

func TestCoverLetterDraft_MissingFields_EmptyDraft(t *testing.T) {
	var draft CoverLetterDraft

	assert.Equal(t,
		[]string{"intro", "body_paragraphs", "closing", "company_name", "recipient_name"},
		draft.MissingFields())
	assert.Error(t, draft.Validate())
}

func TestCoverLetterDraft_Validate_Complete(t *testing.T) {
	draft := CoverLetterDraft{
		Intro:          "Opening",
		BodyParagraphs: []string{"Body"},
		Closing:        "Closing",
		CompanyName:    "Acme",
		RecipientName:  "Hiring Manager",
	}
	assert.NoError(t, draft.Validate())
	assert.Empty(t, draft.MissingFields())
}
