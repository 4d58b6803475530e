package model

import "time"

// TimestampLayout is how record timestamps are shown in reports, JSON and the CLI.
const TimestampLayout = "2006-01-02 15:04:05"

// HistoryRecord is one persisted counting request.
type HistoryRecord struct {
	ID                 int64     `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	SourceFilename     string    `json:"filename"`
	Count              int       `json:"count"`
	AnnotatedImagePath string    `json:"result_path"`
}
