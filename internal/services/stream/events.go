package stream

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindFile    EventKind = "file"
	EventKindContent EventKind = "content"
	EventKindError   EventKind = "error"
	EventKindSummary EventKind = "summary"
	EventKindDone    EventKind = "done"
)

// Event is one step of a document run. Exactly one payload matching Kind is set;
// start and done carry only Path.
type Event struct {
	Kind EventKind
	Path string

	File    *FileEvent
	Content *ContentEvent
	Err     *ErrorEvent
	Summary *SummaryEvent
}

type FileEvent struct {
	Path        string
	DisplayPath string
	Extension   string
	Language    string
	SizeBytes   int64
	Tokens      int
	Model       string
}

type ContentEvent struct {
	Path     string
	Language string
	Data     string
}

// ErrorEvent reports a file that was selected but could not be read as text.
type ErrorEvent struct {
	Path    string
	Message string
}

type SummaryEvent struct {
	Files       int
	FailedFiles int
	Bytes       int64
	Tokens      int
	Model       string
}
