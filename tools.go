package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createUpdateRowByLookupTool returns the excel.updateRowByLookup tool definition
func createUpdateRowByLookupTool() mcp.Tool {
	return mcp.NewTool("excel.updateRowByLookup",
		mcp.WithDescription("Find the row whose search-column value matches a reference value (text, number, or date in several formats), then write values into columns of that row, optionally offset by N rows"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("SharePoint/OneDrive URL of the document library hosting the file"),
		),
		mcp.WithString("file_name",
			mcp.Required(),
			mcp.Description("Excel file name, e.g. 'Trade Tracker.xlsx'"),
		),
		mcp.WithString("sheet_name",
			mcp.Required(),
			mcp.Description("Worksheet name"),
		),
		mcp.WithString("search_column",
			mcp.Required(),
			mcp.Description("Column letter to search, e.g. 'C'"),
		),
		mcp.WithString("reference_value",
			mcp.Required(),
			mcp.Description("Value to look up; dates accepted as MM/DD/YYYY, YYYY-MM-DD, DD-MM-YYYY and match date-serial cells"),
		),
		mcp.WithString("target_columns",
			mcp.Required(),
			mcp.Description("JSON array of column letters to write, e.g. '[\"D\", \"E\"]'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of values, same length as target_columns; strings, numbers, booleans and null allowed"),
		),
		mcp.WithNumber("row_offset",
			mcp.Description("Rows below the matched row to write into (default: 0)"),
		),
	)
}

// createUpdateRangeTool returns the excel.updateRange tool definition
func createUpdateRangeTool() mcp.Tool {
	return mcp.NewTool("excel.updateRange",
		mcp.WithDescription("Update a rectangular cell range in a worksheet with a 2D array of values"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("SharePoint/OneDrive URL of the document library hosting the file"),
		),
		mcp.WithString("file_name",
			mcp.Required(),
			mcp.Description("Excel file name"),
		),
		mcp.WithString("sheet_name",
			mcp.Required(),
			mcp.Description("Worksheet name"),
		),
		mcp.WithString("address",
			mcp.Required(),
			mcp.Description("Range address, e.g. 'A1:C3'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON 2D array of values matching the range dimensions"),
		),
	)
}

// createAppendRowsTool returns the excel.appendRows tool definition
func createAppendRowsTool() mcp.Tool {
	return mcp.NewTool("excel.appendRows",
		mcp.WithDescription("Append rows to a named Excel table"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("SharePoint/OneDrive URL of the document library hosting the file"),
		),
		mcp.WithString("file_name",
			mcp.Required(),
			mcp.Description("Excel file name"),
		),
		mcp.WithString("table_name",
			mcp.Required(),
			mcp.Description("Workbook table to append to"),
		),
		mcp.WithString("rows",
			mcp.Required(),
			mcp.Description("JSON 2D array; each inner array is one row"),
		),
	)
}

// createLogTradesTool returns the excel.logTrades tool definition
func createLogTradesTool() mcp.Tool {
	return mcp.NewTool("excel.logTrades",
		mcp.WithDescription("Append a batch of trades to the configured trade tracker: trades are sorted chronologically, strategies normalized to short codes, expired trades closed out, and rows written below the anchor date row"),
		mcp.WithString("trades",
			mcp.Required(),
			mcp.Description("JSON array of trade objects (open_date, open_time, close_date, close_time, strategy, credit, debit, contracts, open_fees, close_fees, sold_call_strike, sold_put_strike, width, expired)"),
		),
		mcp.WithString("reference_date",
			mcp.Description("Anchor date to look up in the open-date column; defaults to the last dated row of the sheet"),
		),
		mcp.WithString("sheet_name",
			mcp.Description("Worksheet name; defaults to the current month, e.g. 'December'"),
		),
	)
}
