package metadata

// CommandMetadata describes one subcommand of the literaleval CLI,
// enough to render its help message.
type CommandMetadata struct {
	Name        string // Name of the subcommand (e.g., "eval")
	Description string // One or more lines describing the subcommand
	Args        string // Placeholder for positional arguments (e.g., "[expr...]")
	Options     []*OptionMetadata
}

// OptionMetadata holds information about a single command-line option.
type OptionMetadata struct {
	CliName      string // CLI flag name (e.g., "max-int-digits")
	TypeName     string // Go type of the flag value (e.g., "string", "int")
	HelpText     string // Description for the option
	EnvVar       string // Environment variable consulted for the option, if any
	DefaultValue any    // Default value shown in help; nil or "" hides it
	EnumValues   []any  // Allowed values, if restricted
}

