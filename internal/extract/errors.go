package extract

import "fmt"

// RowError reports a table row whose shape does not match what the extractor expects
type RowError struct {
	TableID string
	URL     string
	Row     int
	Reason  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %q row %d at %s: %v", e.TableID, e.Row, e.URL, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Reason
}
