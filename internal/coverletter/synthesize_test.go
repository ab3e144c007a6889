package coverletter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/types"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func testResume() *types.Resume {
	return &types.Resume{
		PersonalInfo: &types.PersonalInfo{Name: "Ada Lovelace"},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Role: "Staff Engineer", Bullets: []string{"Built the thing", "Scaled the thing", "Deprecated the thing"}},
			{Company: "Initech", Role: "Engineer", Bullets: []string{"Shipped reports"}},
			{Company: "Hooli", Role: "Intern"},
		},
		Projects: []types.ProjectEntry{
			{Name: "Sidecar", Bullets: []string{"First bullet", "Second bullet"}},
		},
		Skills: &types.Skills{Technologies: []string{"Kubernetes", "Postgres", "Kafka", "Redis"}},
	}
}

func newTestSynthesizer(client llm.Client) *Synthesizer {
	return NewSynthesizer(client).WithWarnings(io.Discard)
}

func TestSynthesize_ValidResponse(t *testing.T) {
	client := &fakeClient{response: `{
		"intro": "Dear team, I am thrilled to apply.",
		"body_paragraphs": ["At Acme I built things.", "At Initech I shipped things."],
		"closing": "I look forward to speaking.",
		"company_name": "Acme Corp",
		"recipient_name": "Hiring Manager"
	}`}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "job description", "")

	assert.Equal(t, "Dear team, I am thrilled to apply.", draft.Intro)
	assert.Len(t, draft.BodyParagraphs, 2)
	assert.Equal(t, "Acme Corp", draft.CompanyName)
	require.NoError(t, draft.Validate())
}

func TestSynthesize_StringBodyCoerced(t *testing.T) {
	client := &fakeClient{response: `{
		"intro": "Intro.",
		"body_paragraphs": "One single paragraph.",
		"closing": "Closing.",
		"company_name": "Acme",
		"recipient_name": "Hiring Manager"
	}`}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "jd", "")

	assert.Equal(t, []string{"One single paragraph."}, draft.BodyParagraphs)
}

func TestSynthesize_MissingClosingUsesFullFallback(t *testing.T) {
	// A draft missing any mandatory field is discarded wholesale, even
	// though intro and body were usable.
	client := &fakeClient{response: `{
		"intro": "Usable intro.",
		"body_paragraphs": ["Usable body."],
		"company_name": "Acme",
		"recipient_name": "Hiring Manager"
	}`}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "jd", "Acme")

	assert.NotEqual(t, "Usable intro.", draft.Intro)
	require.NoError(t, draft.Validate())
	assert.Len(t, draft.BodyParagraphs, 2)
	assert.Contains(t, draft.BodyParagraphs[0], "Kubernetes, Postgres, Kafka")
	assert.Contains(t, draft.BodyParagraphs[1], "Staff Engineer")
}

func TestSynthesize_MalformedJSONUsesFallback(t *testing.T) {
	client := &fakeClient{response: "I'd be happy to help! Here is a cover letter draft..."}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "jd", "")

	require.NoError(t, draft.Validate())
	assert.Equal(t, "Hiring Manager", draft.RecipientName)
}

func TestSynthesize_ServiceErrorUsesGenericFallback(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "jd", "Acme Corp")

	require.NoError(t, draft.Validate())
	assert.Equal(t, "Acme Corp", draft.CompanyName)
	assert.NotContains(t, draft.BodyParagraphs[0], "Kubernetes")
}

func TestSynthesize_MarkdownFencedResponseAccepted(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"intro\": \"I\", \"body_paragraphs\": [\"B\"], \"closing\": \"C\", \"company_name\": \"Acme\", \"recipient_name\": \"HM\"}\n```"}
	syn := newTestSynthesizer(client)

	draft := syn.Synthesize(context.Background(), testResume(), "jd", "")

	assert.Equal(t, "I", draft.Intro)
	assert.Equal(t, "Acme", draft.CompanyName)
}

func TestBuildResumeSummary_Bounds(t *testing.T) {
	summary := BuildResumeSummary(testResume())

	assert.Contains(t, summary, "Name: Ada Lovelace")
	assert.Contains(t, summary, "Staff Engineer at Acme")
	assert.Contains(t, summary, "Engineer at Initech")
	assert.NotContains(t, summary, "Hooli", "only the top two experiences are summarized")
	assert.Contains(t, summary, "Built the thing")
	assert.Contains(t, summary, "Scaled the thing")
	assert.NotContains(t, summary, "Deprecated the thing", "two bullets per experience")
	assert.Contains(t, summary, "First bullet")
	assert.NotContains(t, summary, "Second bullet", "one bullet per project")
}

func TestBuildResumeSummary_EmptyResume(t *testing.T) {
	summary := BuildResumeSummary(&types.Resume{})

	assert.Contains(t, summary, "Name: Unknown")
	assert.NotContains(t, summary, "Key Experiences")
	assert.NotContains(t, summary, "Key Projects")
}

func TestResumeFallback_EmptyResumeDefaults(t *testing.T) {
	draft := ResumeFallback(&types.Resume{}, "")

	require.NoError(t, draft.Validate())
	assert.Contains(t, draft.BodyParagraphs[0], "software development")
	assert.Contains(t, draft.BodyParagraphs[1], "Software Engineer")
	assert.Equal(t, "Hiring Manager", draft.CompanyName)
}

func TestDryRunDraft_Deterministic(t *testing.T) {
	resume := testResume()
	first := DryRunDraft(resume, "Acme")
	second := DryRunDraft(resume, "Acme")
	assert.Equal(t, first, second)
	require.NoError(t, first.Validate())
}

func TestSynthesize_PromptCarriesSummaryAndJD(t *testing.T) {
	client := &fakeClient{err: errors.New("short-circuit")}
	syn := newTestSynthesizer(client)

	syn.Synthesize(context.Background(), testResume(), "Platform team, Go and Kubernetes", "")

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Platform team, Go and Kubernetes")
	assert.Contains(t, client.prompts[0], "Ada Lovelace")
}
