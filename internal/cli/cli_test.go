package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/projdoc/internal/tokenizer"
)

const (
	scenarioDocument = "# Frontend Project Documentation\n\n" +
		"## a.ts\n\n```typescript\nconst a = 1;\n```\n\n" +
		"## ui/d.tsx\n\n```typescript\n<D />\n```\n\n" +
		"\n---\n\n*Documentation generated automatically*\n"
	stubModelName = "stub-model"
)

type stubCounter struct{}

func (stubCounter) Name() string { return stubModelName }

func (stubCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return copier.err
}

type cliHarness struct {
	workingDirectory string
	logs             *observer.ObservedLogs
	copier           *recordingCopier
	stdout           *bytes.Buffer
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	return &cliHarness{
		workingDirectory: t.TempDir(),
		copier:           &recordingCopier{},
		stdout:           &bytes.Buffer{},
	}
}

func (harness *cliHarness) run(arguments ...string) error {
	core, logs := observer.New(zapcore.InfoLevel)
	harness.logs = logs
	command := NewRootCommand(Dependencies{
		Logger:    zap.New(core),
		Clipboard: harness.copier,
		NewCounter: func(tokenizer.Config) (tokenizer.Counter, string, error) {
			return stubCounter{}, stubModelName, nil
		},
		WorkingDirectory: harness.workingDirectory,
	})
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	command.SetOut(harness.stdout)
	command.SetErr(harness.stdout)
	return command.Execute()
}

func (harness *cliHarness) path(relative string) string {
	return filepath.Join(harness.workingDirectory, filepath.FromSlash(relative))
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func scenarioTree() map[string]string {
	return map[string]string{
		"project/a.ts":                "const a = 1;",
		"project/node_modules/b.ts":   "export const b = 2;",
		"project/components/ui/c.tsx": "<C />",
		"project/ui/d.tsx":            "<D />",
		"project/.env.local":          "SECRET=1",
	}
}

func TestRootCommandWritesScenarioDocument(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, scenarioTree())

	if err := harness.run("project"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	document := readFile(t, harness.path("frontend_documentation.md"))
	if document != scenarioDocument {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", document, scenarioDocument)
	}

	expectedStatus := []string{
		"Documenting project from: " + harness.path("project"),
		"Output file: frontend_documentation.md",
		"Excluding directories: [.next node_modules public]",
		"Excluding files: [.env.local .gitignore README.md package-lock.json]",
		"---",
		"Documentation complete! Check frontend_documentation.md",
	}
	for _, message := range expectedStatus {
		if harness.logs.FilterMessage(message).Len() != 1 {
			t.Fatalf("expected status line %q, got %v", message, harness.logs.All())
		}
	}
}

func TestRootCommandIsIdempotent(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, scenarioTree())

	if err := harness.run("project", "-o", "first.md"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := harness.run("project", "-o", "second.md"); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if readFile(t, harness.path("first.md")) != readFile(t, harness.path("second.md")) {
		t.Fatalf("runs over an unchanged tree differ")
	}
}

func TestRootCommandDoesNotDocumentItsOutput(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, map[string]string{"app.js": "run();"})

	for attempt := 0; attempt < 2; attempt++ {
		if err := harness.run("-o", "bundle.json"); err != nil {
			t.Fatalf("run %d failed: %v", attempt, err)
		}
	}
	document := readFile(t, harness.path("bundle.json"))
	if strings.Contains(document, "## bundle.json") {
		t.Fatalf("output file documented itself:\n%s", document)
	}
	if !strings.Contains(document, "## app.js\n\n```javascript\nrun();\n```") {
		t.Fatalf("expected app.js section:\n%s", document)
	}
}

func TestRootCommandFailsForMissingRoot(t *testing.T) {
	harness := newCLIHarness(t)
	err := harness.run("absent")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing root error, got %v", err)
	}
	if _, statErr := os.Stat(harness.path("frontend_documentation.md")); !os.IsNotExist(statErr) {
		t.Fatalf("output file must not be created for a missing root")
	}
}

func TestRootCommandRejectsFileRoot(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, map[string]string{"a.ts": "x"})
	if err := harness.run("a.ts"); err == nil {
		t.Fatalf("expected error for a file root")
	}
}

func TestRootCommandFlagsOverrideConfiguration(t *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedOutput string
		expectedTitle  string
		expectedPath   string
	}{
		{
			name:           "configuration_only",
			arguments:      nil,
			expectedOutput: "configured.md",
			expectedTitle:  "# From Config\n\n",
			expectedPath:   "## src\\a.ts\n\n",
		},
		{
			name:           "flags_win",
			arguments:      []string{"--title", "From Flag", "--separator", "slash", "-o", "flagged.md"},
			expectedOutput: "flagged.md",
			expectedTitle:  "# From Flag\n\n",
			expectedPath:   "## src/a.ts\n\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			harness := newCLIHarness(t)
			writeTree(t, harness.workingDirectory, map[string]string{
				"project/src/a.ts": "export {};",
				"projdoc.yaml":     "root: project\noutput: configured.md\ntitle: From Config\nseparator: backslash\n",
			})
			if err := harness.run(testCase.arguments...); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			document := readFile(t, harness.path(testCase.expectedOutput))
			if !strings.HasPrefix(document, testCase.expectedTitle) {
				t.Fatalf("expected title %q in:\n%s", testCase.expectedTitle, document)
			}
			if !strings.Contains(document, testCase.expectedPath) {
				t.Fatalf("expected heading %q in:\n%s", testCase.expectedPath, document)
			}
		})
	}
}

func TestRootCommandRejectsUnknownSeparator(t *testing.T) {
	harness := newCLIHarness(t)
	if err := harness.run("--separator", "pipe"); err == nil {
		t.Fatalf("expected error for unknown separator")
	}
}

func TestRootCommandReportsTokenTotals(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, scenarioTree())

	if err := harness.run("project", "--tokens", "yes"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expected := "Summary: 2 files, 17b, 17 tokens (model: stub-model)"
	if harness.logs.FilterMessage(expected).Len() != 1 {
		t.Fatalf("expected summary %q, got %v", expected, harness.logs.All())
	}
}

func TestRootCommandCopiesDocumentToClipboard(t *testing.T) {
	harness := newCLIHarness(t)
	writeTree(t, harness.workingDirectory, scenarioTree())

	if err := harness.run("project", "--clipboard"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(harness.copier.copied) != 1 || harness.copier.copied[0] != scenarioDocument {
		t.Fatalf("expected document on clipboard, got %q", harness.copier.copied)
	}
}

func TestRootCommandClipboardFailureIsWarning(t *testing.T) {
	harness := newCLIHarness(t)
	harness.copier.err = errors.New("no display")
	writeTree(t, harness.workingDirectory, scenarioTree())

	if err := harness.run("project", "--clipboard"); err != nil {
		t.Fatalf("clipboard failure must not fail the run: %v", err)
	}
	warnings := harness.logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "no display") {
		t.Fatalf("expected one clipboard warning, got %v", warnings)
	}
}

func TestRootCommandPrintsVersion(t *testing.T) {
	harness := newCLIHarness(t)
	if err := harness.run("--version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(harness.stdout.String(), "projdoc version: ") {
		t.Fatalf("unexpected version output %q", harness.stdout.String())
	}
	if _, statErr := os.Stat(harness.path("frontend_documentation.md")); !os.IsNotExist(statErr) {
		t.Fatalf("version must not write a document")
	}
}

func TestInitCommandRejectsVersionFlag(t *testing.T) {
	harness := newCLIHarness(t)
	if err := harness.run("init", "--version"); err == nil {
		t.Fatalf("expected init to reject --version")
	}
	if _, statErr := os.Stat(harness.path("projdoc.yaml")); !os.IsNotExist(statErr) {
		t.Fatalf("init --version must not write a configuration file")
	}
}

func TestInitCommandWritesConfiguration(t *testing.T) {
	harness := newCLIHarness(t)
	if err := harness.run("init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(readFile(t, harness.path("projdoc.yaml")), "separator: slash") {
		t.Fatalf("unexpected configuration template")
	}
	if err := harness.run("init"); err == nil {
		t.Fatalf("expected init to refuse overwriting without --force")
	}
	if err := harness.run("init", "--force"); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
}
