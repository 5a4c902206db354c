// Package selection classifies the line handed back by the picker. The
// text before the first ':' is the entity identifier embedded by the
// listing package; a line without a colon is free-typed input.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a resolved selection.
type Kind int

const (
	// Cancelled means the picker returned nothing; the operation must
	// short-circuit without issuing any action.
	Cancelled Kind = iota
	// Identified means the line references a listed entity by id.
	Identified
	// FreeText means the user typed a name that matches no listed
	// entity.
	FreeText
)

// Selection is the outcome of resolving picker output.
type Selection struct {
	Kind Kind
	ID   uint64
	Text string
}

// ParseID extracts the numeric id prefix of a picked line. Strict: the
// text before the first ':' must parse as an unsigned id.
func ParseID(line string) (uint64, error) {
	prefix, _, _ := strings.Cut(line, ":")
	id, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("selection %q has no numeric id prefix: %w", line, err)
	}
	return id, nil
}

// ParseName extracts the string identifier prefix of a picked line, used
// for outputs whose identity is their name. The whole line counts when
// it carries no colon.
func ParseName(line string) (string, error) {
	name, _, _ := strings.Cut(line, ":")
	if name == "" {
		return "", fmt.Errorf("selection %q has no name prefix", line)
	}
	return name, nil
}

// Resolve classifies picker output in id-or-new-entry mode: empty input
// is a cancellation, a line with a colon must reference a listed entity
// by id, and anything else is free-typed text.
func Resolve(line string) (Selection, error) {
	if line == "" {
		return Selection{Kind: Cancelled}, nil
	}
	if strings.Contains(line, ":") {
		id, err := ParseID(line)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Kind: Identified, ID: id}, nil
	}
	return Selection{Kind: FreeText, Text: line}, nil
}
