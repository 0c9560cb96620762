package sheetsclient

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// PublishTab writes rows to the named tab starting at A1. The tab is created when missing;
// an existing tab is cleared first so rows from an older timetable do not linger.
func (c *Client) PublishTab(spreadsheetID, tabTitle string, rows [][]string) error {
	exists, err := c.hasTab(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if exists {
		if _, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, quoteTab(tabTitle), &sheets.ClearValuesRequest{}).Do(); err != nil {
			return fmt.Errorf("failed to clear tab %q: %w", tabTitle, err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	valueRange := &sheets.ValueRange{Values: toValues(rows)}
	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, quoteTab(tabTitle)+"!A1", valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to write timetable to tab %q: %w", tabTitle, err)
	}

	return nil
}

func (c *Client) hasTab(spreadsheetID, tabTitle string) (bool, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return false, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tabTitle {
			return true, nil
		}
	}
	return false, nil
}

// quoteTab formats a tab title for A1 notation
func quoteTab(title string) string {
	return "'" + title + "'"
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
