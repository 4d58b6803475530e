package dto

// ProcessResponse is returned by POST /process on success.
type ProcessResponse struct {
	Count     int    `json:"count"`
	ResultURL string `json:"result_url"`
	Filename  string `json:"filename"`
}
