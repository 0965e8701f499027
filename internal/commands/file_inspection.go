package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/utils"
)

type fileInspectionConfig struct {
	TokenCounter tokenizer.Counter
	TokenModel   string
	Warn         func(string)
}

type fileInspectionResult struct {
	Content   string
	SizeBytes int64
	Tokens    int
	Model     string
	ReadError error
}

// inspectFile reads path once. A file that cannot be opened or is not text yields
// a result carrying ReadError; token counting problems are only warned about.
func inspectFile(fileSystem afero.Fs, path string, config fileInspectionConfig) fileInspectionResult {
	warn := config.Warn
	if warn == nil {
		warn = func(string) {}
	}

	fileBytes, readErr := afero.ReadFile(fileSystem, path)
	if readErr != nil {
		warn(fmt.Sprintf(WarningFileReadFormat, path, readErr))
		return fileInspectionResult{ReadError: readErr}
	}

	result := fileInspectionResult{SizeBytes: int64(len(fileBytes))}
	content, decodeErr := utils.DecodeText(fileBytes)
	if decodeErr != nil {
		warn(fmt.Sprintf(WarningFileReadFormat, path, decodeErr))
		result.ReadError = decodeErr
		return result
	}
	result.Content = content

	if config.TokenCounter != nil {
		countResult, tokenErr := tokenizer.CountBytes(config.TokenCounter, fileBytes)
		if tokenErr != nil {
			warn(fmt.Sprintf(WarningTokenCountFormat, path, tokenErr))
		} else if countResult.Counted {
			result.Tokens = countResult.Tokens
			if result.Tokens > 0 && config.TokenModel != "" {
				result.Model = config.TokenModel
			}
		}
	}

	return result
}
