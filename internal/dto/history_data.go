// HistoryData is the payload of GET /api/history.
package dto

type HistoryData struct {
	Records []HistoryItem `json:"records"`
	Length  int           `json:"length"`
	Total   int           `json:"total"`
}

// HistoryItem is one record as shown to clients.
type HistoryItem struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
	Count     int    `json:"count"`
	ResultURL string `json:"result_url"`
}
