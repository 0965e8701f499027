// Package commands implements the traversal that selects and reads the files of a project document.
package commands

const (
	// WarningFileReadFormat reports a file that could not be read as text.
	WarningFileReadFormat = "Warning: failed to read file %s: %v"
	// WarningTokenCountFormat reports a token counting failure for a file.
	WarningTokenCountFormat = "Warning: failed to count tokens for %s: %v"
)

const (
	errorNilVisitor       = "document stream visitor is nil"
	errorNilFileSystem    = "document stream file system is nil"
	errorEmptyRoot        = "document stream root path is empty"
	errorRootStatFormat   = "cannot access root directory %s: %w"
	errorRootNotDirFormat = "root path %s is not a directory"
	errorRootReadFormat   = "cannot enumerate root directory %s: %w"
	relativePathSeparator = "/"
	rootRelativeDirectory = "."
)
