package cli

import (
	"reflect"
	"testing"
)

func TestRootBooleanFlagsKeepPositionalRoot(t *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		expectedTokens    bool
		expectedClipboard bool
		expectedRoot      []string
		expectError       bool
	}{
		{
			name:         "defaults",
			arguments:    []string{"./root"},
			expectedRoot: []string{"./root"},
		},
		{
			name:           "tokens_with_literal_before_root",
			arguments:      []string{"--tokens", "yes", "./root"},
			expectedTokens: true,
			expectedRoot:   []string{"./root"},
		},
		{
			name:           "tokens_without_value_before_root",
			arguments:      []string{"--tokens", "./root"},
			expectedTokens: true,
			expectedRoot:   []string{"./root"},
		},
		{
			name:              "clipboard_after_root",
			arguments:         []string{"./root", "--clipboard"},
			expectedClipboard: true,
			expectedRoot:      []string{"./root"},
		},
		{
			name:         "off_and_no_literals",
			arguments:    []string{"--clipboard", "off", "--tokens=no", "./root"},
			expectedRoot: []string{"./root"},
		},
		{
			name:              "on_literal_with_equals",
			arguments:         []string{"--clipboard=on"},
			expectedClipboard: true,
		},
		{
			name:        "rejects_unknown_literal",
			arguments:   []string{"--tokens=perhaps", "./root"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := NewRootCommand(Dependencies{})
			parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			tokens, tokensErr := command.Flags().GetBool(tokensFlagName)
			if tokensErr != nil {
				t.Fatalf("read --%s: %v", tokensFlagName, tokensErr)
			}
			clipboardEnabled, clipboardErr := command.Flags().GetBool(clipboardFlagName)
			if clipboardErr != nil {
				t.Fatalf("read --%s: %v", clipboardFlagName, clipboardErr)
			}
			if tokens != testCase.expectedTokens || clipboardEnabled != testCase.expectedClipboard {
				t.Fatalf("expected tokens=%t clipboard=%t, got tokens=%t clipboard=%t", testCase.expectedTokens, testCase.expectedClipboard, tokens, clipboardEnabled)
			}
			positional := command.Flags().Args()
			if len(positional) == 0 {
				positional = nil
			}
			if !reflect.DeepEqual(positional, testCase.expectedRoot) {
				t.Fatalf("expected positional root %v, got %v", testCase.expectedRoot, positional)
			}
		})
	}
}

func TestBooleanFlagMarksExplicitFalseAsChanged(t *testing.T) {
	command := NewRootCommand(Dependencies{})
	if err := command.ParseFlags(normalizeBooleanFlagArguments(command, []string{"--tokens", "no"})); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !command.Flags().Changed(tokensFlagName) {
		t.Fatalf("an explicit false must override configuration")
	}
	if command.Flags().Changed(clipboardFlagName) {
		t.Fatalf("unset flag reported as changed")
	}
}
