package help

import (
	"strings"
	"testing"

	"github.com/podhmo/literaleval/internal/metadata"
	"github.com/stretchr/testify/assert"
)

func TestGenerateHelp_Basic(t *testing.T) {
	cmdMeta := &metadata.CommandMetadata{
		Name:        "eval",
		Description: "Evaluate literal expressions.\nReads stdin when no expression is given.",
		Args:        "[expr...]",
		Options: []*metadata.OptionMetadata{
			{
				CliName:      "strategy",
				TypeName:     "string",
				HelpText:     "Tree walk strategy.",
				DefaultValue: "stack",
				EnumValues:   []any{"stack", "recursive"},
			},
			{
				CliName:      "max-frames",
				TypeName:     "int",
				HelpText:     "Worklist cap of the stack strategy.",
				DefaultValue: 0,
			},
			{
				CliName:      "config",
				TypeName:     "string",
				HelpText:     "Config file path.",
				DefaultValue: "",
				EnvVar:       "LITERALEVAL_CONFIG",
			},
		},
	}

	helpMsg := GenerateHelp("literaleval", cmdMeta)

	expected := "literaleval eval - Evaluate literal expressions.\n" +
		"                   Reads stdin when no expression is given.\n" +
		"\n" +
		"Usage:\n" +
		"  literaleval eval [flags] [expr...]\n" +
		"\n" +
		"Flags:\n" +
		"  --strategy   string Tree walk strategy. (default: \"stack\") (allowed: \"stack\", \"recursive\")\n" +
		"  --max-frames int    Worklist cap of the stack strategy. (default: 0)\n" +
		"  --config     string Config file path. (env: LITERALEVAL_CONFIG)\n" +
		"\n" +
		"  -h, --help          Show this help message and exit\n"

	if helpMsg != expected {
		t.Errorf("help message mismatch:\n---EXPECTED---\n%s\n\n---ACTUAL---\n%s", expected, helpMsg)
	}
}

func TestGenerateHelp_NoArgs(t *testing.T) {
	helpMsg := GenerateHelp("literaleval", &metadata.CommandMetadata{Name: "dump", Description: "Print trees."})
	assert.Contains(t, helpMsg, "Usage:\n  literaleval dump [flags]\n")
	assert.True(t, strings.HasSuffix(helpMsg, "  -h, --help  Show this help message and exit\n"), helpMsg)
}

func TestGenerateHelp_NilMetadata(t *testing.T) {
	helpMsg := GenerateHelp("literaleval", nil)
	if !strings.Contains(helpMsg, "<error>") {
		t.Errorf("Expected error message for nil metadata, got: %s", helpMsg)
	}
}

func TestGenerateOverview(t *testing.T) {
	cmds := []*metadata.CommandMetadata{
		{Name: "eval", Description: "Evaluate literals.\nMore text."},
		{Name: "verify", Description: "Cross-check strategies."},
	}
	got := GenerateOverview("literaleval", "safe literal evaluation", cmds)
	expected := `literaleval - safe literal evaluation

Usage:
  literaleval <subcommand> [flags] [args...]

Subcommands:
  eval    Evaluate literals.
  verify  Cross-check strategies.

Run 'literaleval <subcommand> -h' for the flags of a subcommand.
`
	assert.Equal(t, expected, got)
}
