package metadata

import "testing"

func TestCommandMetadata(t *testing.T) {
	t.Run("create command metadata", func(t *testing.T) {
		md := CommandMetadata{
			Name: "eval",
			Args: "[expr...]",
			Options: []*OptionMetadata{
				{CliName: "strategy", TypeName: "string", EnumValues: []any{"stack", "recursive"}},
			},
		}

		if md.Name != "eval" {
			t.Errorf("expected Name to be %q, but got %q", "eval", md.Name)
		}
		if got := len(md.Options[0].EnumValues); got != 2 {
			t.Errorf("expected 2 enum values, but got %d", got)
		}
	})
}
