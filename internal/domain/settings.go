package domain

import "time"

// Settings configures the rate store, the refresh job, the API server and report output.
type Settings struct {
	Rates  RateStoreSettings  `yaml:"rates" json:"rates"`
	Source RateSourceSettings `yaml:"source" json:"source"`
	Server ServerSettings     `yaml:"server" json:"server"`
	// ReportDir is where file-based reports are written.
	ReportDir string `yaml:"report_dir" json:"reportDir"`
}

// RateStoreSettings selects where the rate series is persisted.
type RateStoreSettings struct {
	// Backend is "file" or "s3".
	Backend string `yaml:"backend" json:"backend"`
	Path    string `yaml:"path" json:"path"`
	Bucket  string `yaml:"bucket" json:"bucket"`
	Key     string `yaml:"key" json:"key"`
	Region  string `yaml:"region" json:"region"`
	// Endpoint overrides the S3 endpoint, e.g. for LocalStack.
	Endpoint string `yaml:"endpoint" json:"endpoint"`
}

// RateSourceSettings configures the external rate lookup.
type RateSourceSettings struct {
	URL     string        `yaml:"url" json:"url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `yaml:"addr" json:"addr"`
}
