// Package diagnostic provides structured errors and warnings
// reported while checking an emitted visualization program or a request.
//
// Key capabilities:
//   - Dangling and duplicate symbol reports
//   - Stage ordering violations with a suggested valid order
//   - Request validation findings with "did you mean" suggestions
package diagnostic
