package model

// ScanRecord is one classification outcome as it lives in the history store and
// on the wire. Immutable once created; timestamp is milliseconds since epoch.
type ScanRecord struct {
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url"`
	IsSafe    bool   `json:"isSafe"`
	Message   string `json:"message"`
}

// Signals groups the human-readable indicators a classification triggered.
type Signals struct {
	Suspicious []string `json:"suspicious"`
	Positive   []string `json:"positive"`
}

// Analysis is the full output of classifying a single URL.
type Analysis struct {
	IsSafe  bool
	Message string
	Score   int
	Signals Signals
}

// ScanResponse is the /api/scan response body.
type ScanResponse struct {
	URL     string  `json:"url"`
	IsSafe  bool    `json:"isSafe"`
	Message string  `json:"message"`
	Score   int     `json:"score"`
	Signals Signals `json:"signals"`
}

// Stats is the /api/stats response body. Percentages are formatted to one
// decimal place, "0" when no scans have been recorded yet.
type Stats struct {
	TotalScans          int    `json:"totalScans"`
	SafeScans           int    `json:"safeScans"`
	PhishingScans       int    `json:"phishingScans"`
	SafePercentage      string `json:"safePercentage"`
	PhishingPercentage  string `json:"phishingPercentage"`
	KnownLegitimateUrls int    `json:"knownLegitimateUrls"`
	KnownPhishingUrls   int    `json:"knownPhishingUrls"`
}
