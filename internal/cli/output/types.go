package output

import (
	"time"

	"github.com/lathaniel/alfa/pkg/alfa"
)

// ModelOutput is the JSON form of `alfa model`.
type ModelOutput struct {
	Path          string `json:"path"`
	Dir           string `json:"dir"`
	Name          string `json:"name"`
	Filename      string `json:"filename"`
	Locked        bool   `json:"locked"`
	LockPath      string `json:"lock_path"`
	TableCount    int    `json:"table_count"`
	RunCount      int    `json:"run_count"`
	ValuationDate string `json:"valuation_date,omitempty"`
}

// TablesOutput is the JSON form of `alfa tables`.
type TablesOutput struct {
	Model  string   `json:"model"`
	Tables []string `json:"tables"`
}

// RunsOutput is the JSON form of `alfa runs`.
type RunsOutput struct {
	Model string   `json:"model"`
	Runs  []string `json:"runs"`
}

// RunOutput is the JSON form of `alfa show`.
type RunOutput struct {
	ID            string        `json:"id"`
	FileID        string        `json:"file_id"`
	Model         string        `json:"model"`
	Description   string        `json:"description"`
	ValuationDate string        `json:"valuation_date"`
	OutputFile    string        `json:"output_file,omitempty"`
	Metadata      alfa.Metadata `json:"metadata"`
}

// TableOutput is the JSON form of `alfa output`.
type TableOutput struct {
	Run       string     `json:"run"`
	Path      string     `json:"path"`
	Columns   []string   `json:"columns"`
	Rows      []alfa.Row `json:"rows"`
	TotalRows int        `json:"total_rows"`
	Truncated bool       `json:"truncated"`
}

// LogsOutput is the JSON form of `alfa logs`.
type LogsOutput struct {
	Run  string            `json:"run"`
	Logs map[string]string `json:"logs"`
}

// LockOutput is the JSON form of `alfa locked`.
type LockOutput struct {
	Model    string `json:"model"`
	Locked   bool   `json:"locked"`
	LockPath string `json:"lock_path"`
}

// FieldsOutput is the JSON form of `alfa fields`.
type FieldsOutput struct {
	File   string           `json:"file"`
	Assets []AssetInputInfo `json:"assets"`
}

// AssetInputInfo describes one asset input.
type AssetInputInfo struct {
	Name       string   `json:"name"`
	Fields     []string `json:"fields"`
	OutputDest string   `json:"output_dest"`
}

// IndexOutput is the JSON form of `alfa index`.
type IndexOutput struct {
	ScanID    string       `json:"scan_id"`
	Model     string       `json:"model"`
	Indexed   []string     `json:"indexed"`
	Failed    []RunFailure `json:"failed"`
	StatePath string       `json:"state_path"`
	Duration  string       `json:"duration"`
}

// RunFailure is a run that could not be resolved while indexing.
type RunFailure struct {
	Run   string `json:"run"`
	Error string `json:"error"`
}

// HistoryOutput is the JSON form of `alfa history`.
type HistoryOutput struct {
	Scans []ScanInfo `json:"scans"`
}

// ScanInfo describes one catalog scan.
type ScanInfo struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	ModelPath string    `json:"model_path"`
	RunCount  int       `json:"run_count"`
	StartedAt time.Time `json:"started_at"`
}

// WatchEvent is one line of `alfa watch --output json`.
type WatchEvent struct {
	Type string    `json:"type"`
	Run  string    `json:"run,omitempty"`
	Path string    `json:"path,omitempty"`
	Time time.Time `json:"time"`
}

// VersionOutput is the JSON form of `alfa version`.
type VersionOutput struct {
	Version  string `json:"version"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}
