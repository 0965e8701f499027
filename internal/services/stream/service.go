// Package stream turns a document traversal into an ordered sequence of events.
package stream

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/temirov/projdoc/internal/commands"
	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/types"
)

// DocumentOptions configures StreamDocument.
type DocumentOptions struct {
	FileSystem   afero.Fs
	Root         string
	Separator    string
	TokenCounter tokenizer.Counter
	TokenModel   string
	SkipPaths    []string
	Warn         func(message string)
}

// Handler consumes events in order. A returned error stops the run.
type Handler func(Event) error

type summaryTracker struct {
	files  int
	failed int
	bytes  int64
	tokens int
	model  string
}

func (tracker *summaryTracker) add(file types.DocumentedFile) {
	tracker.files++
	if file.ReadError != nil {
		tracker.failed++
	}
	tracker.bytes += file.SizeBytes
	tracker.tokens += file.Tokens
	if tracker.model == "" && file.Model != "" && file.Tokens > 0 {
		tracker.model = file.Model
	}
}

func (tracker *summaryTracker) summary() *SummaryEvent {
	return &SummaryEvent{
		Files:       tracker.files,
		FailedFiles: tracker.failed,
		Bytes:       tracker.bytes,
		Tokens:      tracker.tokens,
		Model:       tracker.model,
	}
}

// StreamDocument emits start, then for every documented file a file event followed
// by either a content or an error event, then summary and done. Events are
// delivered synchronously on the calling goroutine in traversal order.
func StreamDocument(opts DocumentOptions, handle Handler) error {
	if handle == nil {
		return errors.New("stream: event handler is nil")
	}
	if opts.Root == "" {
		return fmt.Errorf("stream: document root path is empty")
	}

	if err := handle(Event{Kind: EventKindStart, Path: opts.Root}); err != nil {
		return err
	}

	tracker := &summaryTracker{}
	visit := func(file types.DocumentedFile) error {
		tracker.add(file)
		if err := handle(Event{
			Kind: EventKindFile,
			Path: file.Path,
			File: &FileEvent{
				Path:        file.Path,
				DisplayPath: file.DisplayPath,
				Extension:   file.Extension,
				Language:    file.Language,
				SizeBytes:   file.SizeBytes,
				Tokens:      file.Tokens,
				Model:       file.Model,
			},
		}); err != nil {
			return err
		}

		if file.ReadError != nil {
			return handle(Event{
				Kind: EventKindError,
				Path: file.Path,
				Err:  &ErrorEvent{Path: file.Path, Message: file.ReadError.Error()},
			})
		}
		return handle(Event{
			Kind:    EventKindContent,
			Path:    file.Path,
			Content: &ContentEvent{Path: file.Path, Language: file.Language, Data: file.Content},
		})
	}

	streamOptions := commands.DocumentStreamOptions{
		FileSystem:   opts.FileSystem,
		Root:         opts.Root,
		Separator:    opts.Separator,
		TokenCounter: opts.TokenCounter,
		TokenModel:   opts.TokenModel,
		SkipPaths:    opts.SkipPaths,
		Warn:         opts.Warn,
	}
	if err := commands.StreamDocumentFiles(streamOptions, visit); err != nil {
		return err
	}

	if err := handle(Event{Kind: EventKindSummary, Path: opts.Root, Summary: tracker.summary()}); err != nil {
		return err
	}
	return handle(Event{Kind: EventKindDone, Path: opts.Root})
}
