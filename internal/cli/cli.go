// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/projdoc/internal/config"
	"github.com/temirov/projdoc/internal/output"
	"github.com/temirov/projdoc/internal/services/clipboard"
	"github.com/temirov/projdoc/internal/services/stream"
	"github.com/temirov/projdoc/internal/tokenizer"
	"github.com/temirov/projdoc/internal/types"
	"github.com/temirov/projdoc/internal/utils"
)

const (
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	titleFlagName        = "title"
	separatorFlagName    = "separator"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	clipboardFlagName    = "clipboard"
	configFlagName       = "config"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "projdoc version: %s\n"
	defaultRootPath      = "."
	rootUse              = "projdoc [root]"
	rootShortDescription = "write a project's frontend sources into one Markdown document"

	rootLongDescription = `projdoc walks a project directory, skips build output, dependencies and
generated assets, and writes every remaining source file into a single Markdown
document with one fenced code block per file.`

	rootUsageExample = `  # Document the current directory into frontend_documentation.md
  projdoc

  # Document another project with a custom title and token counts
  projdoc ../webapp -o webapp.md --title "Webapp" --tokens`

	initUse              = "init"
	initShortDescription = "write a default projdoc.yaml"

	initLongDescription = `Write the default configuration into ./projdoc.yaml, or into
~/.projdoc/projdoc.yaml with --global. Existing files are kept unless --force is given.`

	outputFlagDescription    = "output Markdown file"
	titleFlagDescription     = "document title"
	separatorFlagDescription = "display path separator (slash or backslash)"
	tokensFlagDescription    = "count tokens of documented content"
	modelFlagDescription     = "tokenizer model to use for token counting"
	clipboardFlagDescription = "copy the finished document to the clipboard"
	configFlagDescription    = "explicit configuration file"
	versionFlagDescription   = "display application version"
	globalFlagDescription    = "write the global configuration"
	forceFlagDescription     = "overwrite an existing configuration file"

	statusDocumentingFormat     = "Documenting project from: %s"
	statusOutputFormat          = "Output file: %s"
	statusExcludedDirsFormat    = "Excluding directories: %v"
	statusExcludedFilesFormat   = "Excluding files: %v"
	statusSeparatorLine         = "---"
	statusCompleteFormat        = "Documentation complete! Check %s"
	statusClipboardCopied       = "Document copied to clipboard"
	statusConfigWrittenFormat   = "Configuration written to %s"
	warningClipboardFormat      = "Warning: failed to copy document to clipboard: %v"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorRootMissingFormat      = "root directory '%s' does not exist"
	errorRootStatFormat         = "stat failed for '%s': %w"
	errorRootNotDirectoryFormat = "root path '%s' is not a directory"
	errorCreateOutputFormat     = "create output file %s: %w"
	errorCloseOutputFormat      = "close output file %s: %w"
	errorReadOutputFormat       = "read output file %s for clipboard: %w"
)

// CounterFactory builds the token counter for a run.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Dependencies are the collaborators a run uses. Zero values select the
// production implementations.
type Dependencies struct {
	Logger           *zap.Logger
	FileSystem       afero.Fs
	Clipboard        clipboard.Copier
	NewCounter       CounterFactory
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() (Dependencies, error) {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = afero.NewOsFs()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.NewCounter == nil {
		dependencies.NewCounter = tokenizer.NewCounter
	}
	if dependencies.WorkingDirectory == "" {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return dependencies, fmt.Errorf(workingDirectoryErrorFormat, err)
		}
		dependencies.WorkingDirectory = workingDirectory
	}
	return dependencies, nil
}

// Execute runs the projdoc application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// runFlags holds the raw values of the root command flags.
type runFlags struct {
	output     string
	title      string
	separator  string
	tokens     bool
	model      string
	clipboard  bool
	configPath string
}

// NewRootCommand builds the root Cobra command with its init subcommand.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var showVersion bool
	var flags runFlags

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			resolvedDependencies, err := dependencies.withDefaults()
			if err != nil {
				return err
			}
			options, err := resolveRunOptions(command, arguments, flags, resolvedDependencies.WorkingDirectory)
			if err != nil {
				return err
			}
			return runDocument(options, resolvedDependencies)
		},
	}

	rootFlags := rootCommand.Flags()
	rootFlags.StringVarP(&flags.output, outputFlagName, outputFlagShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	rootFlags.StringVar(&flags.title, titleFlagName, utils.DefaultDocumentTitle, titleFlagDescription)
	rootFlags.StringVar(&flags.separator, separatorFlagName, utils.SeparatorSlash, separatorFlagDescription)
	registerBooleanFlag(rootFlags, &flags.tokens, tokensFlagName, false, tokensFlagDescription)
	rootFlags.StringVar(&flags.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerBooleanFlag(rootFlags, &flags.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	rootCommand.PersistentFlags().StringVar(&flags.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	rootFlags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			resolvedDependencies, err := dependencies.withDefaults()
			if err != nil {
				return err
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: resolvedDependencies.WorkingDirectory,
			})
			if err != nil {
				return err
			}
			resolvedDependencies.Logger.Info(fmt.Sprintf(statusConfigWrittenFormat, path))
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runOptions is the fully resolved configuration of one run.
type runOptions struct {
	root       string
	outputPath string
	title      string
	separator  string
	tokens     bool
	model      string
	clipboard  bool
}

// resolveRunOptions layers explicitly set flags over the loaded configuration,
// which is itself layered over the flag defaults.
func resolveRunOptions(command *cobra.Command, arguments []string, flags runFlags, workingDirectory string) (runOptions, error) {
	loaded, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if err != nil {
		return runOptions{}, err
	}

	changed := command.Flags().Changed
	options := runOptions{
		root:       pickString(len(arguments) > 0, firstArgument(arguments), loaded.Root, defaultRootPath),
		outputPath: pickString(changed(outputFlagName), flags.output, loaded.Output, utils.DefaultOutputFileName),
		title:      pickString(changed(titleFlagName), flags.title, loaded.Title, utils.DefaultDocumentTitle),
		model:      pickString(changed(modelFlagName), flags.model, loaded.Tokens.Model, tokenizer.DefaultModel),
		tokens:     pickBool(changed(tokensFlagName), flags.tokens, loaded.Tokens.Enabled),
		clipboard:  pickBool(changed(clipboardFlagName), flags.clipboard, loaded.Clipboard),
	}
	separatorName := pickString(changed(separatorFlagName), flags.separator, loaded.Separator, utils.SeparatorSlash)
	options.separator, err = utils.SeparatorCharacter(separatorName)
	if err != nil {
		return runOptions{}, err
	}

	options.root, err = absolutePath(workingDirectory, options.root)
	if err != nil {
		return runOptions{}, err
	}
	options.outputPath, err = absolutePath(workingDirectory, options.outputPath)
	if err != nil {
		return runOptions{}, err
	}
	return options, nil
}

func firstArgument(arguments []string) string {
	if len(arguments) == 0 {
		return utils.EmptyString
	}
	return arguments[0]
}

func pickString(flagSet bool, flagValue string, configured string, fallback string) string {
	if flagSet {
		return flagValue
	}
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}

func pickBool(flagSet bool, flagValue bool, configured *bool) bool {
	if flagSet || configured == nil {
		return flagValue
	}
	return *configured
}

func absolutePath(workingDirectory string, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	absolute, err := filepath.Abs(filepath.Join(workingDirectory, path))
	if err != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, path, err)
	}
	return absolute, nil
}

// runDocument writes the document for options.root into options.outputPath.
func runDocument(options runOptions, dependencies Dependencies) (err error) {
	logger := dependencies.Logger
	fileSystem := dependencies.FileSystem

	rootInfo, statErr := fileSystem.Stat(options.root)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return fmt.Errorf(errorRootMissingFormat, options.root)
		}
		return fmt.Errorf(errorRootStatFormat, options.root, statErr)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirectoryFormat, options.root)
	}

	displayedOutput := utils.RelativePathOrSelf(options.outputPath, dependencies.WorkingDirectory)
	logger.Info(fmt.Sprintf(statusDocumentingFormat, options.root))
	logger.Info(fmt.Sprintf(statusOutputFormat, displayedOutput))
	logger.Info(fmt.Sprintf(statusExcludedDirsFormat, utils.ExcludedDirectoryNames()))
	logger.Info(fmt.Sprintf(statusExcludedFilesFormat, utils.ExcludedFileNames()))
	logger.Info(statusSeparatorLine)

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokens {
		tokenCounter, tokenModel, err = dependencies.NewCounter(tokenizer.Config{Model: options.model})
		if err != nil {
			return err
		}
	}

	outputFile, createErr := fileSystem.Create(options.outputPath)
	if createErr != nil {
		return fmt.Errorf(errorCreateOutputFormat, options.outputPath, createErr)
	}
	defer func() {
		if closeErr := outputFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, options.outputPath, closeErr)
		}
	}()

	renderer := output.NewMarkdownStreamRenderer(outputFile, options.title)
	var summary *types.OutputSummary
	handle := func(event stream.Event) error {
		if event.Kind == stream.EventKindSummary {
			summary = output.NewOutputSummary(event.Summary)
		}
		return renderer.Handle(event)
	}

	streamErr := stream.StreamDocument(stream.DocumentOptions{
		FileSystem:   fileSystem,
		Root:         options.root,
		Separator:    options.separator,
		TokenCounter: tokenCounter,
		TokenModel:   tokenModel,
		SkipPaths:    []string{options.outputPath},
		Warn:         func(message string) { logger.Warn(message) },
	}, handle)
	if flushErr := renderer.Flush(); flushErr != nil && streamErr == nil {
		streamErr = flushErr
	}
	if streamErr != nil {
		return streamErr
	}

	logger.Info(output.FormatSummaryLine(summary))
	logger.Info(fmt.Sprintf(statusCompleteFormat, displayedOutput))

	if options.clipboard {
		copyDocument(options.outputPath, dependencies)
	}
	return nil
}

func copyDocument(outputPath string, dependencies Dependencies) {
	document, readErr := afero.ReadFile(dependencies.FileSystem, outputPath)
	if readErr != nil {
		dependencies.Logger.Warn(fmt.Sprintf(warningClipboardFormat, fmt.Errorf(errorReadOutputFormat, outputPath, readErr)))
		return
	}
	if copyErr := dependencies.Clipboard.Copy(string(document)); copyErr != nil {
		dependencies.Logger.Warn(fmt.Sprintf(warningClipboardFormat, copyErr))
		return
	}
	dependencies.Logger.Info(statusClipboardCopied)
}
