package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"excel_trade_tracker/internal/app"
	"excel_trade_tracker/internal/excel"
	"excel_trade_tracker/internal/graph"
	"excel_trade_tracker/internal/notifications"
	"excel_trade_tracker/internal/trades"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// jsonResult wraps a payload as indented JSON text content. Every tool
// returns a structured result with a status field; errors never escape the
// tool boundary as raw errors.
func jsonResult(payload interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"status": "error", "message": %q}`, err.Error()))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return jsonResult(map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

// failureResult maps an internal error to a structured result, surfacing the
// store's status code when there is one.
func failureResult(err error) *mcp.CallToolResult {
	var storeErr *excel.StoreError
	if errors.As(err, &storeErr) {
		return jsonResult(map[string]interface{}{
			"status":      "error",
			"message":     storeErr.Message,
			"status_code": storeErr.StatusCode,
		})
	}
	return errorResult(err.Error())
}

// resolveRequestDocument resolves the url/file_name arguments into storage
// coordinates. The second return is non-nil when the request should be
// answered immediately.
func resolveRequestDocument(ctx context.Context, client *graph.Client, request mcp.CallToolRequest) (excel.DocumentRef, *mcp.CallToolResult) {
	url, err := request.RequireString("url")
	if err != nil || url == "" {
		return excel.DocumentRef{}, errorResult("url parameter is required")
	}
	fileName, err := request.RequireString("file_name")
	if err != nil || fileName == "" {
		return excel.DocumentRef{}, errorResult("file_name parameter is required")
	}

	doc, err := client.ResolveDocument(ctx, url, fileName)
	if err != nil {
		log.Error().Err(err).Str("url", url).Str("file", fileName).Msg("Document resolution failed")
		return excel.DocumentRef{}, failureResult(err)
	}
	return doc.Ref(), nil
}

// handleUpdateRowByLookup implements the excel.updateRowByLookup tool
func handleUpdateRowByLookup(client *graph.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sheet, err := request.RequireString("sheet_name")
		if err != nil || sheet == "" {
			return errorResult("sheet_name parameter is required"), nil
		}
		searchColumn, err := request.RequireString("search_column")
		if err != nil || searchColumn == "" {
			return errorResult("search_column parameter is required"), nil
		}
		referenceValue, err := request.RequireString("reference_value")
		if err != nil {
			return errorResult("reference_value parameter is required"), nil
		}

		columnsJSON, err := request.RequireString("target_columns")
		if err != nil {
			return errorResult("target_columns parameter is required"), nil
		}
		var columns []string
		if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
			return errorResult(fmt.Sprintf("target_columns must be a JSON array of column letters: %v", err)), nil
		}

		valuesJSON, err := request.RequireString("values")
		if err != nil {
			return errorResult("values parameter is required"), nil
		}
		var values []excel.CellValue
		if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
			return errorResult(fmt.Sprintf("values must be a JSON array: %v", err)), nil
		}

		// Reject malformed input before any store call is made.
		if len(columns) != len(values) {
			return errorResult(fmt.Sprintf("target_columns and values must have the same length (got %d columns, %d values)", len(columns), len(values))), nil
		}

		rowOffset := request.GetInt("row_offset", 0)

		ref, errResult := resolveRequestDocument(ctx, client, request)
		if errResult != nil {
			return errResult, nil
		}

		lookup, err := excel.NewLocator(client).Locate(ctx, ref, sheet, searchColumn, referenceValue)
		if err != nil {
			return failureResult(err), nil
		}
		if !lookup.Found {
			return jsonResult(map[string]interface{}{
				"status":        "error",
				"message":       fmt.Sprintf("reference value %q not found in column %s of sheet %q", referenceValue, searchColumn, sheet),
				"sample_values": lookup.Samples,
			}), nil
		}

		outcome, err := excel.NewUpdater(client).Update(ctx, ref, sheet, lookup.Row+rowOffset, columns, values)
		if err != nil {
			return failureResult(err), nil
		}

		payload := map[string]interface{}{
			"status":        outcome.Status,
			"message":       fmt.Sprintf("Updated %d of %d cells in row %d of sheet %q", len(outcome.Updated), len(columns), outcome.Row, sheet),
			"sheet_name":    sheet,
			"row":           outcome.Row,
			"updated_cells": outcome.Updated,
		}
		if len(outcome.Failures) > 0 {
			payload["failed_cells"] = outcome.Failures
		}
		return jsonResult(payload), nil
	}
}

// handleUpdateRange implements the excel.updateRange tool
func handleUpdateRange(client *graph.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sheet, err := request.RequireString("sheet_name")
		if err != nil || sheet == "" {
			return errorResult("sheet_name parameter is required"), nil
		}
		address, err := request.RequireString("address")
		if err != nil || address == "" {
			return errorResult("address parameter is required"), nil
		}

		valuesJSON, err := request.RequireString("values")
		if err != nil {
			return errorResult("values parameter is required"), nil
		}
		var values [][]excel.CellValue
		if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
			return errorResult(fmt.Sprintf("values must be a JSON 2D array: %v", err)), nil
		}

		ref, errResult := resolveRequestDocument(ctx, client, request)
		if errResult != nil {
			return errResult, nil
		}

		result, err := client.WriteRange(ctx, ref, sheet, address, values)
		if err != nil {
			return failureResult(err), nil
		}

		return jsonResult(map[string]interface{}{
			"status":       "success",
			"message":      fmt.Sprintf("Successfully updated range %q in sheet %q", address, sheet),
			"sheet_name":   sheet,
			"address":      result.Address,
			"row_count":    result.RowCount,
			"column_count": result.ColumnCount,
		}), nil
	}
}

// handleAppendRows implements the excel.appendRows tool
func handleAppendRows(client *graph.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tableName, err := request.RequireString("table_name")
		if err != nil || tableName == "" {
			return errorResult("table_name parameter is required"), nil
		}

		rowsJSON, err := request.RequireString("rows")
		if err != nil {
			return errorResult("rows parameter is required"), nil
		}
		var rows [][]excel.CellValue
		if err := json.Unmarshal([]byte(rowsJSON), &rows); err != nil {
			return errorResult(fmt.Sprintf("rows must be a JSON 2D array: %v", err)), nil
		}

		ref, errResult := resolveRequestDocument(ctx, client, request)
		if errResult != nil {
			return errResult, nil
		}

		index, err := client.AppendTableRows(ctx, ref, tableName, rows)
		if err != nil {
			return failureResult(err), nil
		}

		return jsonResult(map[string]interface{}{
			"status":     "success",
			"message":    fmt.Sprintf("Successfully appended %d rows to table %q", len(rows), tableName),
			"table_name": tableName,
			"rows_added": len(rows),
			"row_index":  index,
		}), nil
	}
}

// handleLogTrades implements the excel.logTrades tool against the
// preconfigured trade tracker workbook.
func handleLogTrades(client *graph.Client, tracker app.TrackerConfig, notifier *notifications.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tradesJSON, err := request.RequireString("trades")
		if err != nil {
			return errorResult("trades parameter is required"), nil
		}
		var batch []trades.TradeRecord
		if err := json.Unmarshal([]byte(tradesJSON), &batch); err != nil {
			return errorResult(fmt.Sprintf("trades must be a JSON array of trade objects: %v", err)), nil
		}

		if !tracker.Configured() {
			return errorResult("trade tracker is not configured; set TRADE_TRACKER_URL and TRADE_TRACKER_FILE"), nil
		}

		doc, err := client.ResolveDocument(ctx, tracker.URL, tracker.FileName)
		if err != nil {
			log.Error().Err(err).Str("file", tracker.FileName).Msg("Trade tracker resolution failed")
			return failureResult(err), nil
		}

		outcome := trades.NewProcessor(client).LogTrades(ctx, doc.Ref(),
			batch,
			request.GetString("reference_date", ""),
			request.GetString("sheet_name", ""))

		notifier.NotifyBatch(ctx, outcome.Sheet, outcome.Status, len(outcome.Logged), len(outcome.Failed))

		return jsonResult(outcome), nil
	}
}
