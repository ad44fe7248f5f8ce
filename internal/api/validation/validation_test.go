package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintlens/sprintlens/internal/api/validation"
)

func intPtr(v int) *int { return &v }

func fieldNames(errs []validation.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

// --- Team ---

func TestValidateCreateTeamRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        "Frontend Team",
		Description: "Owns the web client",
	})
	assert.Empty(t, errs)
}

func TestValidateCreateTeamRequest_MissingName(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{Name: "   "})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateCreateTeamRequest_NameTooLong(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name: strings.Repeat("x", 256),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateCreateTeamRequest_DescriptionTooLong(t *testing.T) {
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        "ok",
		Description: strings.Repeat("x", 1001),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "description", errs[0].Field)
}

// --- Member ---

func TestValidateCreateMemberRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreateMemberRequest(validation.CreateMemberRequest{
		Name:  "Sam Rivera",
		Email: "sam@example.com",
	})
	assert.Empty(t, errs)
}

func TestValidateCreateMemberRequest_MissingFields(t *testing.T) {
	errs := validation.ValidateCreateMemberRequest(validation.CreateMemberRequest{})
	assert.ElementsMatch(t, []string{"name", "email"}, fieldNames(errs))
}

func TestValidateCreateMemberRequest_BadEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@b", "a b@c.com", "@example.com"} {
		errs := validation.ValidateCreateMemberRequest(validation.CreateMemberRequest{
			Name:  "Sam",
			Email: email,
		})
		require.Len(t, errs, 1, "email %q should be rejected", email)
		assert.Equal(t, "email", errs[0].Field)
	}
}

// --- Sprint ---

func TestValidateCreateSprintRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreateSprintRequest(validation.CreateSprintRequest{
		Name:      "Sprint 12",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-13",
	})
	assert.Empty(t, errs)
}

func TestValidateCreateSprintRequest_MissingEverything(t *testing.T) {
	errs := validation.ValidateCreateSprintRequest(validation.CreateSprintRequest{})
	assert.ElementsMatch(t, []string{"name", "startDate", "endDate"}, fieldNames(errs))
}

func TestValidateCreateSprintRequest_BadDateFormat(t *testing.T) {
	errs := validation.ValidateCreateSprintRequest(validation.CreateSprintRequest{
		Name:      "Sprint 12",
		StartDate: "03/02/2026",
		EndDate:   "2026-03-13",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "startDate", errs[0].Field)
}

func TestValidateCreateSprintRequest_EndBeforeStart(t *testing.T) {
	errs := validation.ValidateCreateSprintRequest(validation.CreateSprintRequest{
		Name:      "Sprint 12",
		StartDate: "2026-03-13",
		EndDate:   "2026-03-02",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "endDate", errs[0].Field)
}

// --- Ticket ---

func TestValidateCreateTicketRequest_Valid(t *testing.T) {
	errs := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title:       "Fix login redirect",
		Type:        "BUG",
		Status:      "TODO",
		Priority:    "HIGH",
		StoryPoints: intPtr(3),
	})
	assert.Empty(t, errs)
}

func TestValidateCreateTicketRequest_OptionalFieldsOmitted(t *testing.T) {
	errs := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title: "Add sprint report",
		Type:  "FEATURE",
	})
	assert.Empty(t, errs)
}

func TestValidateCreateTicketRequest_MissingTitleAndType(t *testing.T) {
	errs := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{})
	assert.ElementsMatch(t, []string{"title", "type"}, fieldNames(errs))
}

func TestValidateCreateTicketRequest_BadEnums(t *testing.T) {
	errs := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title:    "x",
		Type:     "STORY",
		Status:   "SHIPPED",
		Priority: "URGENT",
	})
	assert.ElementsMatch(t, []string{"type", "status", "priority"}, fieldNames(errs))
}

func TestValidateCreateTicketRequest_NegativeStoryPoints(t *testing.T) {
	errs := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title:       "x",
		Type:        "TASK",
		StoryPoints: intPtr(-1),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "storyPoints", errs[0].Field)
}

func TestValidateTicketStatus(t *testing.T) {
	assert.Empty(t, validation.ValidateTicketStatus("DONE"))
	assert.Len(t, validation.ValidateTicketStatus(""), 1)
	assert.Len(t, validation.ValidateTicketStatus("SHIPPED"), 1)
}

// --- Query ---

func TestValidateQueryRequest(t *testing.T) {
	assert.Empty(t, validation.ValidateQueryRequest("show velocity"))
	assert.Len(t, validation.ValidateQueryRequest(""), 1)
	assert.Len(t, validation.ValidateQueryRequest("   "), 1)
	assert.Len(t, validation.ValidateQueryRequest(strings.Repeat("a", 501)), 1)
	assert.Empty(t, validation.ValidateQueryRequest(strings.Repeat("a", 500)))
}
