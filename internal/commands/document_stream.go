package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

// DocumentVisitor receives each DocumentedFile in document order.
type DocumentVisitor func(types.DocumentedFile) error

// DocumentStreamOptions configures StreamDocumentFiles.
type DocumentStreamOptions struct {
	FileSystem   afero.Fs
	Root         string
	Separator    string
	TokenCounter tokenizer.Counter
	TokenModel   string
	// SkipPaths lists files never documented, typically the document being written.
	SkipPaths []string
	Warn      func(message string)
}

type entryKind int

const (
	entryKindFile entryKind = iota
	entryKindDirectory
	entryKindLinkedDirectory
	entryKindOther
)

type documentStreamContext struct {
	options   DocumentStreamOptions
	skipPaths map[string]struct{}
	visitor   DocumentVisitor
}

// StreamDocumentFiles walks options.Root top-down. Within every directory the
// documentable files are visited in lexicographic order, then the directories
// that survive utils.ShouldExcludeDirectory are descended in lexicographic order.
// Excluded directories are never read. Failing to access or enumerate the root
// is returned; an unreadable nested directory is warned about and skipped.
// Per-file read failures are reported on the visited record.
func StreamDocumentFiles(options DocumentStreamOptions, visitor DocumentVisitor) error {
	if visitor == nil {
		return errors.New(errorNilVisitor)
	}
	if options.FileSystem == nil {
		return errors.New(errorNilFileSystem)
	}
	if options.Root == "" {
		return errors.New(errorEmptyRoot)
	}

	ctx := documentStreamContext{
		options:   options,
		skipPaths: make(map[string]struct{}, len(options.SkipPaths)),
		visitor:   visitor,
	}
	ctx.options.Root = filepath.Clean(options.Root)
	if ctx.options.Warn == nil {
		ctx.options.Warn = func(string) {}
	}
	for _, skipPath := range options.SkipPaths {
		if skipPath != "" {
			ctx.skipPaths[filepath.Clean(skipPath)] = struct{}{}
		}
	}

	rootInfo, statErr := ctx.options.FileSystem.Stat(ctx.options.Root)
	if statErr != nil {
		return fmt.Errorf(errorRootStatFormat, ctx.options.Root, statErr)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirFormat, ctx.options.Root)
	}

	return ctx.walkDirectory(ctx.options.Root, rootRelativeDirectory, true)
}

func (ctx *documentStreamContext) walkDirectory(directoryPath string, relativeDirectory string, isRoot bool) error {
	entries, readErr := afero.ReadDir(ctx.options.FileSystem, directoryPath)
	if readErr != nil {
		if isRoot {
			return fmt.Errorf(errorRootReadFormat, directoryPath, readErr)
		}
		ctx.options.Warn(fmt.Sprintf(utils.WarningAccessPathFormat, directoryPath, readErr))
		return nil
	}

	var subdirectoryNames []string
	for _, entry := range entries {
		childPath := filepath.Join(directoryPath, entry.Name())
		switch ctx.classify(childPath, entry) {
		case entryKindDirectory:
			if !utils.ShouldExcludeDirectory(entry.Name(), relativeDirectory) {
				subdirectoryNames = append(subdirectoryNames, entry.Name())
			}
		case entryKindFile:
			if !utils.ShouldDocumentFile(entry.Name()) || ctx.isSkipped(childPath) {
				continue
			}
			if err := ctx.emitFile(childPath, joinRelative(relativeDirectory, entry.Name())); err != nil {
				return err
			}
		}
	}

	for _, subdirectoryName := range subdirectoryNames {
		childPath := filepath.Join(directoryPath, subdirectoryName)
		if err := ctx.walkDirectory(childPath, joinRelative(relativeDirectory, subdirectoryName), false); err != nil {
			return err
		}
	}
	return nil
}

// classify resolves symbolic links without following linked directories.
// A dangling link is treated as a file so its failure shows up in the document.
func (ctx *documentStreamContext) classify(path string, entry os.FileInfo) entryKind {
	mode := entry.Mode()
	if mode&os.ModeSymlink != 0 {
		targetInfo, statErr := ctx.options.FileSystem.Stat(path)
		if statErr != nil {
			return entryKindFile
		}
		if targetInfo.IsDir() {
			return entryKindLinkedDirectory
		}
		mode = targetInfo.Mode()
	}
	switch {
	case mode.IsDir():
		return entryKindDirectory
	case mode.IsRegular():
		return entryKindFile
	default:
		return entryKindOther
	}
}

func (ctx *documentStreamContext) isSkipped(path string) bool {
	if len(ctx.skipPaths) == 0 {
		return false
	}
	_, skipped := ctx.skipPaths[filepath.Clean(path)]
	return skipped
}

func (ctx *documentStreamContext) emitFile(path string, relativePath string) error {
	extension := utils.FileExtension(path)
	result := inspectFile(ctx.options.FileSystem, path, fileInspectionConfig{
		TokenCounter: ctx.options.TokenCounter,
		TokenModel:   ctx.options.TokenModel,
		Warn:         ctx.options.Warn,
	})
	return ctx.visitor(types.DocumentedFile{
		Path:         path,
		RelativePath: relativePath,
		DisplayPath:  utils.DisplayPath(relativePath, ctx.options.Separator),
		Extension:    extension,
		Language:     utils.LanguageLabel(extension),
		Content:      result.Content,
		SizeBytes:    result.SizeBytes,
		Tokens:       result.Tokens,
		Model:        result.Model,
		ReadError:    result.ReadError,
	})
}

func joinRelative(relativeDirectory string, name string) string {
	if relativeDirectory == "" || relativeDirectory == rootRelativeDirectory {
		return name
	}
	return relativeDirectory + relativePathSeparator + name
}
