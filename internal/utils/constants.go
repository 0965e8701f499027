package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// DefaultOutputFileName is the document written when no output path is configured.
	DefaultOutputFileName = "frontend_documentation.md"
	// DefaultDocumentTitle is the level-one heading of the generated document.
	DefaultDocumentTitle = "Frontend Project Documentation"
	// ConfigFileName is the configuration file looked up in the working directory and the global directory.
	ConfigFileName = "projdoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".projdoc"
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error logged by main.
	ApplicationExecutionFailedMessage = "projdoc failed"
	// WarningAccessPathFormat reports a path that could not be inspected during traversal.
	WarningAccessPathFormat = "Warning: skipping %s: %v"
)
