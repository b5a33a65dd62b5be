// Package storage handles the append-only CSV files scraped data is written to.
//
// Regular-season and playoff games each have their own pair of files (games and
// scoring events) inside a data directory. Files are opened in append mode and
// created when absent; nothing is ever rewritten.
package storage
