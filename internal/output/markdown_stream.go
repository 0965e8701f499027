package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/temirov/projdoc/internal/services/stream"
	"github.com/temirov/projdoc/internal/utils"
)

type markdownStreamRenderer struct {
	writer      *bufio.Writer
	title       string
	pendingPath string
	writeErr    error
}

// NewMarkdownStreamRenderer writes the document for the events it handles to writer.
// Output is buffered until Flush. An empty title selects utils.DefaultDocumentTitle.
func NewMarkdownStreamRenderer(writer io.Writer, title string) StreamRenderer {
	if title == "" {
		title = utils.DefaultDocumentTitle
	}
	return &markdownStreamRenderer{writer: bufio.NewWriter(writer), title: title}
}

func (renderer *markdownStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		renderer.printf(headingTitleFormat, renderer.title)
	case stream.EventKindFile:
		if event.File == nil {
			return fmt.Errorf("file event for %s has no payload", event.Path)
		}
		renderer.printf(headingFileFormat, event.File.DisplayPath)
		renderer.pendingPath = event.File.Path
	case stream.EventKindContent:
		if err := renderer.claimPending(event.Path, event.Content != nil); err != nil {
			return err
		}
		renderer.printf(codeFenceOpenFormat, event.Content.Language)
		renderer.write(event.Content.Data)
		renderer.write(codeFenceClose)
	case stream.EventKindError:
		if err := renderer.claimPending(event.Path, event.Err != nil); err != nil {
			return err
		}
		renderer.printf(readErrorFormat, event.Err.Message)
	case stream.EventKindDone:
		renderer.write(DocumentTrailer)
	}
	return renderer.writeErr
}

func (renderer *markdownStreamRenderer) Flush() error {
	if renderer.writeErr != nil {
		return renderer.writeErr
	}
	return renderer.writer.Flush()
}

// claimPending checks that a body event follows the heading of the same file.
func (renderer *markdownStreamRenderer) claimPending(path string, hasPayload bool) error {
	if !hasPayload {
		return fmt.Errorf("body event for %s has no payload", path)
	}
	if renderer.pendingPath == "" || renderer.pendingPath != path {
		return fmt.Errorf("body event for %s does not follow its heading", path)
	}
	renderer.pendingPath = ""
	return nil
}

func (renderer *markdownStreamRenderer) printf(format string, arguments ...any) {
	if renderer.writeErr != nil {
		return
	}
	_, renderer.writeErr = fmt.Fprintf(renderer.writer, format, arguments...)
}

func (renderer *markdownStreamRenderer) write(text string) {
	if renderer.writeErr != nil {
		return
	}
	_, renderer.writeErr = renderer.writer.WriteString(text)
}
