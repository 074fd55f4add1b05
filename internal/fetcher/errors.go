package fetcher

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of error that occurred during a fetch operation
type ErrorKind string

const (
	// KindConnection indicates a network-level error (connection refused, DNS, timeout, ...)
	KindConnection ErrorKind = "connection"
	// KindProvider indicates the market-data provider rejected or failed the request
	KindProvider ErrorKind = "provider"
	// KindNoData indicates the provider responded but the quote series was empty
	KindNoData ErrorKind = "no_data"
	// KindNoTable indicates the scraped page had no historical-data table
	KindNoTable ErrorKind = "no_table"
	// KindNoRow indicates the historical-data table had no usable data row
	KindNoRow ErrorKind = "no_row"
	// KindBadFormat indicates the extracted cell text was not a valid number
	KindBadFormat ErrorKind = "bad_format"
)

// FetchError represents a structured error from a fetch operation.
// Sources always fail with a *FetchError so the tracker can render
// the exact failure text expected in the instrument's output file.
type FetchError struct {
	Kind    ErrorKind
	Message string
	Raw     string // offending cell text, set for KindBadFormat
	Cause   error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// OutputText renders the error as the human-readable string written to
// the instrument's output file. Downstream consumers detect error states
// textually, so the wording here is part of the observable contract.
func (e *FetchError) OutputText() string {
	switch e.Kind {
	case KindConnection:
		return fmt.Sprintf("Connection Error: %s", e.detail())
	case KindProvider:
		return fmt.Sprintf("yahoo Error: %s", e.detail())
	case KindNoData:
		return "No data found via yahoo."
	case KindNoTable:
		return "Error: No historical data table found."
	case KindNoRow:
		return "Error: No recent data row found."
	case KindBadFormat:
		return fmt.Sprintf("Format Error: Extracted value '%s' is not valid.", e.Raw)
	default:
		return fmt.Sprintf("Error: %s", e.detail())
	}
}

func (e *FetchError) detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// ErrorText flattens any fetch error into its output-file rendering.
func ErrorText(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.OutputText()
	}
	return fmt.Sprintf("Error: %v", err)
}

// NewConnectionError creates a connection error
func NewConnectionError(cause error) *FetchError {
	return &FetchError{
		Kind:    KindConnection,
		Message: "request failed",
		Cause:   cause,
	}
}

// NewProviderError creates a provider error
func NewProviderError(message string, cause error) *FetchError {
	return &FetchError{
		Kind:    KindProvider,
		Message: message,
		Cause:   cause,
	}
}

// NewNoDataError creates an empty-series error
func NewNoDataError(symbol string) *FetchError {
	return &FetchError{
		Kind:    KindNoData,
		Message: fmt.Sprintf("no quote data for %s", symbol),
	}
}

// NewNoTableError creates a missing-table error
func NewNoTableError() *FetchError {
	return &FetchError{
		Kind:    KindNoTable,
		Message: "no historical data table in page",
	}
}

// NewNoRowError creates a missing-row error
func NewNoRowError() *FetchError {
	return &FetchError{
		Kind:    KindNoRow,
		Message: "no recent data row in table",
	}
}

// NewBadFormatError creates an unparseable-value error
func NewBadFormatError(raw string, cause error) *FetchError {
	return &FetchError{
		Kind:    KindBadFormat,
		Message: "extracted value is not a valid number",
		Raw:     raw,
		Cause:   cause,
	}
}
