package output

import (
	"github.com/temirov/projdoc/internal/services/stream"
)

// StreamRenderer consumes document events in order and writes them out.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
