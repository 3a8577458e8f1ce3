package businessflow

import (
	"testing"
	"time"

	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateTestShift() *models.Shift {
	return &models.Shift{
		ID:        1,
		Position:  &models.Position{ID: 1, Name: "Nurse"},
		Area:      &models.Area{ID: 2, Name: "ICU"},
		Location:  "Main Building",
		ShiftDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00",
		EndTime:   "16:00",
		Code:      "ABC234",
	}
}

func TestRenderTemplateSubstitutesPlaceholders(t *testing.T) {
	shift := templateTestShift()
	shift.BonusAmount = utils.ToPtr(int64(50))

	values := shiftPlaceholderValues(shift, "https://shifts.example.com/")

	rendered, err := renderTemplate("Open: {position} in {area} on {date}, {start_time}-{end_time}. Bonus: {bonus}. {link}", values)
	require.NoError(t, err)
	assert.Equal(t, "Open: Nurse in ICU on Mon Sep 14, 08:00-16:00. Bonus: $50. https://shifts.example.com/s/ABC234", rendered)
}

func TestRenderTemplateUnknownPlaceholderAborts(t *testing.T) {
	values := shiftPlaceholderValues(templateTestShift(), "https://shifts.example.com")

	_, err := renderTemplate("Hello {nonexistent}", values)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateRender)
}

func TestRenderTemplateOptionalPlaceholdersDefaultEmpty(t *testing.T) {
	shift := templateTestShift()
	shift.Location = ""
	// No bonus either: both optional placeholders render empty and the
	// doubled spaces they leave behind collapse.
	values := shiftPlaceholderValues(shift, "https://shifts.example.com")

	rendered, err := renderTemplate("{position} at {location} {bonus} on {date}", values)
	require.NoError(t, err)
	assert.Equal(t, "Nurse at on Mon Sep 14", rendered)
	assert.NotContains(t, rendered, "  ")
}

func TestRenderTemplateMissingPositionHasNoDefault(t *testing.T) {
	shift := templateTestShift()
	shift.Position = nil
	values := shiftPlaceholderValues(shift, "https://shifts.example.com")

	_, err := renderTemplate("Open: {position}", values)
	assert.ErrorIs(t, err, ErrTemplateRender)
}

func TestRenderTemplateEmptyResultAborts(t *testing.T) {
	_, err := renderTemplate("{bonus}", map[string]string{})
	assert.ErrorIs(t, err, ErrTemplateRender)
}

func TestRenderTemplateLinkTrimsBaseURL(t *testing.T) {
	withSlash := shiftPlaceholderValues(templateTestShift(), "https://shifts.example.com/")
	withoutSlash := shiftPlaceholderValues(templateTestShift(), "https://shifts.example.com")
	assert.Equal(t, withoutSlash[placeholderLink], withSlash[placeholderLink])
	assert.Equal(t, "https://shifts.example.com/s/ABC234", withSlash[placeholderLink])
}

func TestRenderTemplateLiteralTextPassesThrough(t *testing.T) {
	rendered, err := renderTemplate("No placeholders here.", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "No placeholders here.", rendered)
}
