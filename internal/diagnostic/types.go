package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics collects the findings of one check. Errors make the checked
// input unusable; warnings do not.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	// Code identifies the kind of finding, e.g. "undefined_signal".
	Code    string
	Message string
	// Fragment locates the program fragment, e.g. "data[3] transform[1] (stack)".
	Fragment string
	// Symbol is the dataset, field, scale or signal name involved.
	Symbol      string
	Suggestions []string
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, fragment, symbol string) {
	d.Errors = append(d.Errors, Diagnostic{Code: code, Message: message, Fragment: fragment, Symbol: symbol})
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, fragment, symbol string) {
	d.Warnings = append(d.Warnings, Diagnostic{Code: code, Message: message, Fragment: fragment, Symbol: symbol})
}

// Error folds all errors into one, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if len(d.Errors) == 0 {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[fragment] symbol: [code] message (suggestions)", leaving
// out the empty parts.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Fragment != "" {
		prefix = append(prefix, "["+d.Fragment+"]")
	}

	if d.Symbol != "" {
		prefix = append(prefix, d.Symbol)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (" + strings.Join(d.Suggestions, "; ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Suggest attaches suggestions to the most recently added error.
func (d *Diagnostics) Suggest(suggestions ...string) {
	if len(d.Errors) == 0 {
		return
	}

	last := &d.Errors[len(d.Errors)-1]
	last.Suggestions = append(last.Suggestions, suggestions...)
}

// Codes returns the codes of all errors in order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}
