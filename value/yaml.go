package value

import (
	"encoding/base64"
	"math"

	"gopkg.in/yaml.v3"
)

// YAML tags for kinds that have no core YAML equivalent.
const (
	TagTuple    = "!tuple"
	TagComplex  = "!complex"
	TagEllipsis = "!ellipsis"
)

// ToYAML converts v into a YAML node. Dicts and sets keep insertion order;
// sets are encoded as !!set mappings with null values.
func ToYAML(v Value) *yaml.Node {
	switch v := v.(type) {
	case Int:
		return scalar("!!int", v.String())
	case Float:
		return scalar("!!float", yamlFloat(float64(v)))
	case Complex:
		return scalar(TagComplex, FormatComplex(complex128(v)))
	case Str:
		return scalar("!!str", string(v))
	case Bytes:
		return scalar("!!binary", base64.StdEncoding.EncodeToString([]byte(v)))
	case Bool:
		if v {
			return scalar("!!bool", "true")
		}
		return scalar("!!bool", "false")
	case None:
		return scalar("!!null", "null")
	case Ellipsis:
		return scalar(TagEllipsis, "...")
	case Tuple:
		return sequence(TagTuple, v)
	case List:
		return sequence("!!seq", v)
	case *Set:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!set"}
		for _, item := range v.items {
			n.Content = append(n.Content, ToYAML(item), scalar("!!null", ""))
		}
		return n
	case *Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.entries {
			n.Content = append(n.Content, ToYAML(e.Key), ToYAML(e.Value))
		}
		return n
	}
	return scalar("!!null", "null")
}

// MarshalYAML encodes v as a YAML document.
func MarshalYAML(v Value) ([]byte, error) {
	return yaml.Marshal(ToYAML(v))
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func sequence(tag string, items []Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag}
	for _, item := range items {
		n.Content = append(n.Content, ToYAML(item))
	}
	return n
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return FormatFloat(f)
}
