package sheetsclient

import (
	"context"
	"fmt"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// PublishRoster writes a week's roster to the tab named after the week, e.g.
// "Mon Jan 06 2025 - Fri Jan 10 2025". The tab is created if missing; otherwise its
// contents are replaced. The roster is written with a 2-row gap at the top.
func (c *Client) PublishRoster(ctx context.Context, spreadsheetID string, table *model.RosterTable) error {
	tabTitle := table.Title()

	exists, err := c.SheetExists(ctx, spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if !exists {
		if _, err := c.CreateSheet(ctx, spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.ReplaceValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", tabTitle), rosterValues(table)); err != nil {
		return fmt.Errorf("failed to write roster to tab %q: %w", tabTitle, err)
	}

	return nil
}

// rosterValues lays out the roster grid below two empty rows
func rosterValues(table *model.RosterTable) [][]interface{} {
	grid := table.Grid()

	values := make([][]interface{}, 0, len(grid)+2)
	values = append(values, []interface{}{}, []interface{}{})
	for _, row := range grid {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}
	return values
}
