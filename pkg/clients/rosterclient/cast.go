package rosterclient

import (
	"fmt"
	"strings"

	"github.com/undiescoverd/stomp-scheduler/internal/config"
	"github.com/undiescoverd/stomp-scheduler/pkg/core/model"
)

// Expected column names in the cast roster sheet
var castFields = []string{
	"Name",
	"Status",
	"Roles",
}

// ListCast retrieves and parses the cast roster from the configured
// spreadsheet. Only rows with status "Active" are returned.
func (c *Client) ListCast(cfg *config.Config) ([]model.CastMember, error) {
	if cfg.RosterSheetID == "" || cfg.RosterTab == "" {
		return nil, fmt.Errorf("no roster sheet configured")
	}

	values, err := c.GetValues(cfg.RosterSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("roster sheet is empty")
	}

	cast, err := parseCast(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return cast, nil
}

// parseCast converts raw spreadsheet data into CastMember structs
func parseCast(raw [][]interface{}) ([]model.CastMember, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range castFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	// Helper to get field value from row
	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok {
			return ""
		}
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	// Parse data rows
	cast := make([]model.CastMember, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField("Name", row)
		// Skip empty rows
		if name == "" {
			continue
		}

		if !strings.EqualFold(getField("Status", row), "Active") {
			continue
		}

		roles, err := parseRoles(getField("Roles", row))
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, name, err)
		}

		cast = append(cast, model.CastMember{
			Name:          name,
			EligibleRoles: roles,
		})
	}

	return cast, nil
}

// parseRoles splits a comma-separated role list (e.g. "Sarge, Potato")
func parseRoles(value string) ([]model.Role, error) {
	parts := strings.Split(value, ",")
	roles := make([]model.Role, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		role, ok := model.ParseRole(part)
		if !ok || !role.IsPerforming() {
			return nil, fmt.Errorf("unknown role %q", part)
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("no eligible roles listed")
	}
	return roles, nil
}
