package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// HashKey returns a string that is identical for values that compare equal
// and can be used as a set element or dict key. Numbers that are equal
// across kinds (1, 1.0, True, 1+0j) share a key.
func HashKey(v Value) (string, error) {
	var sb strings.Builder
	if err := writeKey(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeKey(sb *strings.Builder, v Value) error {
	switch v := v.(type) {
	case Bool:
		if v {
			sb.WriteString("i1;")
		} else {
			sb.WriteString("i0;")
		}
	case Int:
		sb.WriteString("i")
		sb.WriteString(v.String())
		sb.WriteString(";")
	case Float:
		writeFloatKey(sb, float64(v))
	case Complex:
		c := complex128(v)
		if imag(c) == 0 {
			writeFloatKey(sb, real(c))
			return nil
		}
		sb.WriteString("c")
		sb.WriteString(strconv.FormatFloat(real(c)+0, 'g', -1, 64))
		sb.WriteString(",")
		sb.WriteString(strconv.FormatFloat(imag(c), 'g', -1, 64))
		sb.WriteString(";")
	case Str:
		sb.WriteString("s")
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteString(":")
		sb.WriteString(string(v))
	case Bytes:
		sb.WriteString("b")
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteString(":")
		sb.WriteString(string(v))
	case None:
		sb.WriteString("N;")
	case Ellipsis:
		sb.WriteString("E;")
	case Tuple:
		sb.WriteString("t")
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteString("(")
		for _, elt := range v {
			if err := writeKey(sb, elt); err != nil {
				return err
			}
		}
		sb.WriteString(")")
	default:
		return &UnhashableError{Kind: v.Kind()}
	}
	return nil
}

func writeFloatKey(sb *strings.Builder, f float64) {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		i, _ := new(big.Float).SetFloat64(f).Int(nil)
		sb.WriteString("i")
		sb.WriteString(i.String())
		sb.WriteString(";")
		return
	}
	sb.WriteString("f")
	sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	sb.WriteString(";")
}

// Set is an insertion-ordered collection of distinct hashable values.
type Set struct {
	items []Value
	index map[string]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: map[string]int{}}
}

// Add inserts v unless an equal value is already present.
func (s *Set) Add(v Value) error {
	key, err := HashKey(v)
	if err != nil {
		return err
	}
	if s.index == nil {
		s.index = map[string]int{}
	}
	if _, ok := s.index[key]; ok {
		return nil
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, v)
	return nil
}

// Contains reports whether a value equal to v is present.
func (s *Set) Contains(v Value) (bool, error) {
	key, err := HashKey(v)
	if err != nil {
		return false, err
	}
	_, ok := s.index[key]
	return ok, nil
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.items) }

// Items returns the elements in insertion order.
func (s *Set) Items() []Value {
	return append([]Value(nil), s.items...)
}

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   Value
	Value Value
}

// Dict is an insertion-ordered mapping from hashable keys to values.
// Storing an equal key again keeps the original key and replaces the value.
type Dict struct {
	entries []Entry
	index   map[string]int
}

// NewDict returns an empty dict.
func NewDict() *Dict {
	return &Dict{index: map[string]int{}}
}

// Set stores val under key.
func (d *Dict) Set(key, val Value) error {
	k, err := HashKey(key)
	if err != nil {
		return err
	}
	if d.index == nil {
		d.index = map[string]int{}
	}
	if i, ok := d.index[k]; ok {
		d.entries[i].Value = val
		return nil
	}
	d.index[k] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: val})
	return nil
}

// Get returns the value stored under a key equal to key.
func (d *Dict) Get(key Value) (Value, bool, error) {
	k, err := HashKey(key)
	if err != nil {
		return nil, false, err
	}
	i, ok := d.index[k]
	if !ok {
		return nil, false, nil
	}
	return d.entries[i].Value, true, nil
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Entries returns the entries in insertion order.
func (d *Dict) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}
