// Package types defines every cross‑package data structure used by the projdoc CLI.
package types

// DocumentedFile is one file selected for the document, read and labelled.
// ReadError is set instead of Content when the file could not be read as text.
type DocumentedFile struct {
	Path         string
	RelativePath string
	DisplayPath  string
	Extension    string
	Language     string
	Content      string
	SizeBytes    int64
	Tokens       int
	Model        string
	ReadError    error
}

// OutputSummary captures aggregate information about documented files.
type OutputSummary struct {
	TotalFiles  int
	FailedFiles int
	TotalSize   string
	TotalTokens int
	Model       string
}
