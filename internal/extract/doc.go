// Package extract runs the schedule and scoring extraction pipeline.
//
// An Extractor reads a season schedule table, writes every in-range game that
// links to a boxscore, and for each such game reads the boxscore's scoring
// summary before pausing and moving to the next row. Everything runs on one
// goroutine; output files are held only for the duration of a Run.
package extract
