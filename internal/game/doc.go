// Package game provides the row types extracted from hockey-reference.com pages.
//
// The game package turns raw table cells into named-field records (GameRow and
// ScoringEvent), recognizes period marker rows in the scoring table, and filters
// schedule rows by an inclusive date range using an approximate day ordinal.
//
// The games file layout is fixed at nine schedule columns (Date, Visitor, G,
// Home, G, the OT/SO marker, Att., LOG, Notes) behind a leading GameId. Extra
// source columns are not written.
package game
