package api

type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Previous is empty on the first observation
	Previous *Snapshot
	Error    string
}

type EventType int64

const (
	// EventTypeLayoutChanged - outputs were added, removed, moved or resized.
	EventTypeLayoutChanged EventType = iota
	// EventTypeEnumerationFailed - the OS refused to enumerate outputs.
	EventTypeEnumerationFailed
)

func (e EventType) String() string {
	switch e {
	case EventTypeLayoutChanged:
		return "layout-changed"
	case EventTypeEnumerationFailed:
		return "enumeration-failed"
	default:
		return "unknown"
	}
}
