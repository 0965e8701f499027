// Package output renders document events as Markdown and formats run summaries.
package output

import (
	"fmt"

	"github.com/temirov/projdoc/internal/services/stream"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

const (
	headingTitleFormat  = "# %s\n\n"
	headingFileFormat   = "## %s\n\n"
	codeFenceOpenFormat = "```%s\n"
	codeFenceClose      = "\n```\n\n"
	readErrorFormat     = "*Error reading file: %s*\n\n"
	// DocumentTrailer closes every complete document.
	DocumentTrailer = "\n---\n\n*Documentation generated automatically*\n"
)

// NewOutputSummary converts a stream summary into the display form.
func NewOutputSummary(summary *stream.SummaryEvent) *types.OutputSummary {
	if summary == nil {
		return &types.OutputSummary{TotalSize: utils.FormatFileSize(0)}
	}
	return &types.OutputSummary{
		TotalFiles:  summary.Files,
		FailedFiles: summary.FailedFiles,
		TotalSize:   utils.FormatFileSize(summary.Bytes),
		TotalTokens: summary.Tokens,
		Model:       summary.Model,
	}
}

// FormatSummaryLine renders a one-line human readable summary.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	extra := ""
	if summary.FailedFiles > 0 {
		extra = fmt.Sprintf(", %d unreadable", summary.FailedFiles)
	}
	if summary.TotalTokens > 0 {
		extra += fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, extra, modelSuffix)
}
