// Package cli implements the command-line interface for hockeyref-scrape.
//
// The cli package provides the Cobra-based CLI: the extract command runs the
// schedule and scoring extraction over a date range, and the last-id command
// reports where the previous run stopped so the next run can continue the id
// sequence. Defaults come from the environment (see the config package).
package cli
