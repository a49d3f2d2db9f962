package help

import (
	"fmt"
	"io"
	"strings"

	"github.com/podhmo/literaleval/internal/metadata"
)

// GenerateHelp renders the help message of one subcommand of prog.
func GenerateHelp(prog string, cmdMeta *metadata.CommandMetadata) string {
	if cmdMeta == nil {
		return "<error>"
	}

	var sb strings.Builder
	generateHelp(&sb, prog, cmdMeta)
	return sb.String()
}

func generateHelp(w io.Writer, prog string, cmdMeta *metadata.CommandMetadata) {
	fullName := prog + " " + cmdMeta.Name
	indent := strings.Repeat(" ", len(fullName)+3)
	fmt.Fprintf(w, "%s - %s\n\n", fullName, strings.ReplaceAll(cmdMeta.Description, "\n", "\n"+indent))

	usage := fullName + " [flags]"
	if cmdMeta.Args != "" {
		usage += " " + cmdMeta.Args
	}
	fmt.Fprintf(w, "Usage:\n  %s\n\n", usage)
	fmt.Fprintln(w, "Flags:")

	// align on the longest of the option names and "h, --help"
	maxNameLen := len("h, --help")
	maxTypeLen := 0
	for _, opt := range cmdMeta.Options {
		if l := len(opt.CliName) + 1; l > maxNameLen {
			maxNameLen = l
		}
		if l := len(opt.TypeName); l > maxTypeLen {
			maxTypeLen = l
		}
	}

	for _, opt := range cmdMeta.Options {
		helpText := strings.ReplaceAll(opt.HelpText, "\n", "\n"+strings.Repeat(" ", maxNameLen+maxTypeLen+6))
		fmt.Fprintf(w, "  -%-*s %-*s %s", maxNameLen, "-"+opt.CliName, maxTypeLen, opt.TypeName, helpText)
		if opt.DefaultValue != nil && opt.DefaultValue != "" {
			if s, ok := opt.DefaultValue.(string); ok {
				fmt.Fprintf(w, " (default: %q)", s)
			} else {
				fmt.Fprintf(w, " (default: %v)", opt.DefaultValue)
			}
		}
		if opt.EnvVar != "" {
			fmt.Fprintf(w, " (env: %s)", opt.EnvVar)
		}
		if len(opt.EnumValues) > 0 {
			var enumStrs []string
			for _, v := range opt.EnumValues {
				if s, ok := v.(string); ok {
					enumStrs = append(enumStrs, fmt.Sprintf("%q", s))
				} else {
					enumStrs = append(enumStrs, fmt.Sprintf("%v", v))
				}
			}
			fmt.Fprintf(w, " (allowed: %s)", strings.Join(enumStrs, ", "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "  -%-*s %-*s %s\n", maxNameLen, "h, --help", maxTypeLen, "", "Show this help message and exit")
}

// GenerateOverview renders the top-level usage of prog listing its subcommands.
func GenerateOverview(prog, description string, cmds []*metadata.CommandMetadata) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s\n\n", prog, description)
	fmt.Fprintf(&sb, "Usage:\n  %s <subcommand> [flags] [args...]\n\n", prog)
	fmt.Fprintln(&sb, "Subcommands:")

	maxNameLen := 0
	for _, cmd := range cmds {
		if l := len(cmd.Name); l > maxNameLen {
			maxNameLen = l
		}
	}
	for _, cmd := range cmds {
		summary, _, _ := strings.Cut(cmd.Description, "\n")
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxNameLen, cmd.Name, summary)
	}
	fmt.Fprintf(&sb, "\nRun '%s <subcommand> -h' for the flags of a subcommand.\n", prog)
	return sb.String()
}
