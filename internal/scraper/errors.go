package scraper

import "fmt"

// FetchError reports a page that could not be retrieved
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TableNotFoundError reports a page without the expected table
type TableNotFoundError struct {
	TableID string
	URL     string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found at %s", e.TableID, e.URL)
}
