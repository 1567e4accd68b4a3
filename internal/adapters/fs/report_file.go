package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// RunSummary is the machine-readable record of one run.
type RunSummary struct {
	RunID    string `json:"run_id"`
	Tool     string `json:"tool"`
	Resource string `json:"resource"`
	Verb     string `json:"verb"`
	VaultID  int64  `json:"vault_id"`
	DryRun   bool   `json:"dry_run"`

	Total        int `json:"total"`
	PagesPlanned int `json:"pages_planned"`
	PagesFetched int `json:"pages_fetched"`
	Attempted    int `json:"attempted"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`

	// FailedOffset is set when a page could not be fetched.
	FailedOffset *int `json:"failed_offset,omitempty"`

	Clean           bool      `json:"clean"`
	Error           string    `json:"error,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	FinishedAt      time.Time `json:"finished_at"`
	LogFile         string    `json:"log_file,omitempty"`
}

// ReportFile stores a RunSummary as JSON at a fixed path.
type ReportFile struct {
	path string
}

// NewReportFile creates a ReportFile for path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

// Load reads the last saved summary.
// Returns an empty summary and nil error if no file exists.
func (r *ReportFile) Load(ctx context.Context) (RunSummary, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunSummary{}, nil
		}
		return RunSummary{}, err
	}

	var s RunSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return RunSummary{}, err
	}
	return s, nil
}

// Save writes the summary atomically, replacing any previous one.
func (r *ReportFile) Save(ctx context.Context, s RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// Path returns the file path.
func (r *ReportFile) Path() string {
	return r.path
}
