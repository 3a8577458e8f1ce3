// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shiftwave/shiftwave/models"
)

// Placeholder names recognized in message templates.
const (
	placeholderPosition  = "position"
	placeholderArea      = "area"
	placeholderDate      = "date"
	placeholderStartTime = "start_time"
	placeholderEndTime   = "end_time"
	placeholderLocation  = "location"
	placeholderBonus     = "bonus"
	placeholderLink      = "link"
)

// placeholderDefaults fill in when a shift has no value for an optional
// placeholder. Required placeholders have no default and fail the render.
var placeholderDefaults = map[string]string{
	placeholderBonus:    "",
	placeholderLocation: "",
}

// shiftPlaceholderValues builds the substitution map for a shift.
func shiftPlaceholderValues(shift *models.Shift, publicBaseURL string) map[string]string {
	values := map[string]string{
		placeholderDate:      shift.ShiftDate.Format("Mon Jan 2"),
		placeholderStartTime: shift.StartTime,
		placeholderEndTime:   shift.EndTime,
		placeholderLocation:  shift.Location,
		placeholderLink:      strings.TrimRight(publicBaseURL, "/") + "/s/" + shift.Code,
	}
	if shift.Position != nil {
		values[placeholderPosition] = shift.Position.Name
	}
	if shift.Area != nil {
		values[placeholderArea] = shift.Area.Name
	}
	if shift.BonusAmount != nil {
		values[placeholderBonus] = "$" + strconv.FormatInt(*shift.BonusAmount, 10)
	}
	return values
}

// renderTemplate substitutes {placeholder} tokens in template content. A
// referenced placeholder with neither a value nor a default aborts the render
// with ErrTemplateRender, before anything is sent.
func renderTemplate(content string, values map[string]string) (string, error) {
	var out strings.Builder
	rest := content

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			break
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			out.WriteString(rest)
			break
		}

		out.WriteString(rest[:open])
		name := rest[open+1 : open+close]
		rest = rest[open+close+1:]

		value, ok := values[name]
		if !ok {
			value, ok = placeholderDefaults[name]
			if !ok {
				return "", fmt.Errorf("%w: placeholder %q has no value", ErrTemplateRender, name)
			}
		}
		out.WriteString(value)
	}

	// Collapse doubled spaces left by empty optional placeholders.
	rendered := strings.Join(strings.Fields(out.String()), " ")
	if rendered == "" {
		return "", fmt.Errorf("%w: rendered message is empty", ErrTemplateRender)
	}

	return rendered, nil
}
