package dto

// LiveEvent is pushed to /api/live subscribers whenever a record is stored.
type LiveEvent struct {
	Type   string      `json:"type"`
	Record HistoryItem `json:"record"`
}
