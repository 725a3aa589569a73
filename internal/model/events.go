package model

// Event types on the subscriber channel. The set is closed: every outbound
// message is built through one of the constructors below, and inbound messages
// with an unrecognized type are answered with an error event at the transport
// boundary instead of being dropped silently.
const (
	EventHistory    = "history"
	EventNewScan    = "new-scan"
	EventScan       = "scan"
	EventScanResult = "scan-result"
	EventError      = "error"
)

// Event is a tagged message exchanged over a subscriber connection.
type Event struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HistoryEvent carries the full history snapshot sent once on subscribe.
func HistoryEvent(records []ScanRecord) Event {
	if records == nil {
		records = []ScanRecord{}
	}
	return Event{Type: EventHistory, Data: records}
}

// NewScanEvent is broadcast to every subscriber on each classification.
func NewScanEvent(r ScanRecord) Event {
	return Event{Type: EventNewScan, Data: r}
}

// ScanResultEvent is the private reply to the subscriber that requested a scan.
func ScanResultEvent(r ScanRecord) Event {
	return Event{Type: EventScanResult, Data: r}
}

// ErrorEvent is the private reply to a malformed client message. It never
// closes the connection.
func ErrorEvent(msg string) Event {
	return Event{Type: EventError, Message: msg}
}

// ClientMessage is what a subscriber may send over the wire.
type ClientMessage struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}
