// Package utils contains the fixed selection rules and general helpers used across projdoc.
package utils

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ComponentsDirectoryName is the path segment under which UI component folders are skipped.
	ComponentsDirectoryName = "components"
	// UIDirectoryName is the UI component folder excluded beneath ComponentsDirectoryName.
	UIDirectoryName = "ui"
)

const pathSegmentSeparator = "/"

var excludedDirectoryNames = map[string]struct{}{
	".next":        {},
	"node_modules": {},
	"public":       {},
}

var excludedFileNames = map[string]struct{}{
	".env.local":        {},
	".gitignore":        {},
	"package-lock.json": {},
	"README.md":         {},
}

var includedExtensions = map[string]struct{}{
	".tsx":  {},
	".ts":   {},
	".jsx":  {},
	".js":   {},
	".css":  {},
	".json": {},
	".mjs":  {},
}

// ExcludedDirectoryNames returns the sorted names of directories that are never traversed.
func ExcludedDirectoryNames() []string {
	return sortedKeys(excludedDirectoryNames)
}

// ExcludedFileNames returns the sorted names of files that are never documented.
func ExcludedFileNames() []string {
	return sortedKeys(excludedFileNames)
}

// IncludedExtensions returns the sorted file extensions eligible for documentation.
func IncludedExtensions() []string {
	return sortedKeys(includedExtensions)
}

// ShouldExcludeDirectory reports whether the directory named directoryName, found
// inside parentRelativePath, must be pruned from traversal. parentRelativePath is
// relative to the traversal root and slash-separated; "." or "" denote the root.
// A UIDirectoryName folder is excluded only when some segment of its parent path is
// ComponentsDirectoryName.
func ShouldExcludeDirectory(directoryName string, parentRelativePath string) bool {
	if directoryName == UIDirectoryName && containsSegment(parentRelativePath, ComponentsDirectoryName) {
		return true
	}
	_, excluded := excludedDirectoryNames[directoryName]
	return excluded
}

// ShouldExcludeFile reports whether fileName is one of the well-known non-source files.
func ShouldExcludeFile(fileName string) bool {
	_, excluded := excludedFileNames[fileName]
	return excluded
}

// FileExtension returns the suffix of fileName starting at its last dot.
// Names without a dot, names whose only dot is the leading one (".env") and
// names ending in a dot have no extension.
func FileExtension(fileName string) string {
	baseName := filepath.Base(fileName)
	extension := filepath.Ext(baseName)
	if extension == baseName || extension == "." {
		return ""
	}
	return extension
}

// IsIncludedExtension reports whether extension belongs to the documented set.
// Matching is case-sensitive.
func IsIncludedExtension(extension string) bool {
	_, included := includedExtensions[extension]
	return included
}

// ShouldDocumentFile combines the file name and extension filters.
func ShouldDocumentFile(fileName string) bool {
	if ShouldExcludeFile(fileName) {
		return false
	}
	return IsIncludedExtension(FileExtension(fileName))
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// splitSegments splits a slash-separated relative path and drops empty and "."
// segments. A backslash is part of a name, not a separator.
func splitSegments(relativePath string) []string {
	var segments []string
	for _, segment := range strings.Split(relativePath, pathSegmentSeparator) {
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

func containsSegment(relativePath string, segmentName string) bool {
	for _, segment := range splitSegments(relativePath) {
		if segment == segmentName {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
