package utils

const (
	languageTypeScript = "typescript"
	languageJavaScript = "javascript"
	languageJSON       = "json"
	languageCSS        = "css"
)

var languageLabels = map[string]string{
	".tsx":  languageTypeScript,
	".ts":   languageTypeScript,
	".jsx":  languageJavaScript,
	".js":   languageJavaScript,
	".mjs":  languageJavaScript,
	".json": languageJSON,
	".css":  languageCSS,
}

// LanguageLabel returns the syntax highlighting tag for extension, or an empty string.
func LanguageLabel(extension string) string {
	return languageLabels[extension]
}
