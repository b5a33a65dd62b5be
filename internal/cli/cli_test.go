package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/hockeyref-scraper/internal/config"
	"github.com/pfrederiksen/hockeyref-scraper/internal/extract"
	"github.com/pfrederiksen/hockeyref-scraper/internal/storage"
)

const testSchedule = `
<html><body>
<table id="games">
	<thead>
		<tr><th>Date</th><th>Visitor</th><th>G</th><th>Home</th><th>G</th><th></th><th>Att.</th><th>LOG</th><th>Notes</th></tr>
	</thead>
	<tbody>
		<tr><th><a href="/boxscores/202310100PIT.html">2023-10-10</a></th><td>Chicago Blackhawks</td><td>4</td><td>Pittsburgh Penguins</td><td>2</td><td></td><td>18,358</td><td>2:33</td><td></td></tr>
	</tbody>
</table>
</body></html>
`

const testBoxscore = `
<html><body>
<table id="scoring">
	<tr><th colspan="5">1st Period</th></tr>
	<tr><td>14:05</td><td>CHI</td><td>EV</td><td>Connor Bedard (1)</td><td></td></tr>
</table>
</body></html>
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/leagues/NHL_2024_games.html":
			w.Write([]byte(testSchedule))
		case "/boxscores/202310100PIT.html":
			w.Write([]byte(testBoxscore))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return &config.Config{
		BaseURL:   server.URL,
		UserAgent: config.DefaultUserAgent,
		Timeout:   5 * time.Second,
		DataDir:   t.TempDir(),
		LogLevel:  "error",
		LogFormat: "text",
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(cfg)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestExtractCommand(t *testing.T) {
	cfg := newTestConfig(t)

	out, err := execute(t, cfg, "extract",
		"--path", "/leagues/NHL_2024_games.html",
		"--start-date", "2023-10-01",
		"--end-date", "2023-10-31",
		"--format", "json",
	)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}

	var summary extract.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.Games != 1 || summary.Events != 1 || summary.NextID != 2 {
		t.Errorf("summary = %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, storage.GameFile))
	if err != nil {
		t.Fatalf("reading games file: %v", err)
	}
	if !strings.HasPrefix(string(data), "GameId,Date,") {
		t.Errorf("games file should start with a header, got %q", data)
	}

	out, err = execute(t, cfg, "last-id")
	if err != nil {
		t.Fatalf("last-id error: %v", err)
	}
	if !strings.Contains(out, "Next --start-id: 2") {
		t.Errorf("last-id output = %q", out)
	}
}

func TestExtractCommand_HeaderOverride(t *testing.T) {
	cfg := newTestConfig(t)

	_, err := execute(t, cfg, "extract",
		"--path", "/leagues/NHL_2024_games.html",
		"--start-date", "2023-10-10",
		"--end-date", "2023-10-10",
		"--header=false",
	)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, storage.GameFile))
	if err != nil {
		t.Fatalf("reading games file: %v", err)
	}
	if strings.HasPrefix(string(data), "GameId") {
		t.Errorf("--header=false still wrote a header: %q", data)
	}
}

func TestExtractCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing path",
			args:    []string{"extract", "--start-date", "2023-10-01", "--end-date", "2023-10-31"},
			wantErr: "path",
		},
		{
			name:    "bad date",
			args:    []string{"extract", "--path", "/leagues/NHL_2024_games.html", "--start-date", "Oct 1", "--end-date", "2023-10-31"},
			wantErr: "invalid date range",
		},
		{
			name:    "bad start id",
			args:    []string{"extract", "--path", "/leagues/NHL_2024_games.html", "--start-date", "2023-10-01", "--end-date", "2023-10-31", "--start-id", "0"},
			wantErr: "--start-id",
		},
		{
			name:    "bad format",
			args:    []string{"extract", "--path", "/leagues/NHL_2024_games.html", "--start-date", "2023-10-01", "--end-date", "2023-10-31", "--format", "xml"},
			wantErr: "invalid format",
		},
		{
			name:    "page not found",
			args:    []string{"extract", "--path", "/leagues/NHL_1900_games.html", "--start-date", "2023-10-01", "--end-date", "2023-10-31"},
			wantErr: "404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			_, err := execute(t, cfg, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	summary := &extract.Summary{
		Mode:        "playoffs",
		StartDate:   "2023-04-17",
		EndDate:     "2023-04-19",
		Games:       3,
		Events:      17,
		SkippedRows: 1,
		FirstID:     5,
		NextID:      8,
	}

	if err := WriteSummary(&buf, summary, FormatText, false); err != nil {
		t.Fatalf("WriteSummary() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Wrote 3 playoffs games (ids 5-7) and 17 scoring events.", "Skipped 1 malformed rows.", "Next --start-id: 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteLastID(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLastID(&buf, &LastIDResult{GamesFile: "gamedata.csv", NextStartID: 1}, FormatText); err != nil {
		t.Fatalf("WriteLastID() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No games in gamedata.csv yet.") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := WriteLastID(&buf, &LastIDResult{LastID: 41, NextStartID: 42}, FormatJSON); err != nil {
		t.Fatalf("WriteLastID() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"next_start_id": 42`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLastIDCommand_MissingDataDir(t *testing.T) {
	cfg := newTestConfig(t)
	dir := filepath.Join(cfg.DataDir, "does-not-exist")

	out, err := execute(t, cfg, "last-id", "--data-dir", dir)
	if err != nil {
		t.Fatalf("last-id error: %v", err)
	}
	if !strings.Contains(out, "Next --start-id: 1") {
		t.Errorf("last-id output = %q", out)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("last-id created %s", dir)
	}
}
