package mapping

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"row-hasher/internal/common"
	"row-hasher/internal/diagnostic"
	"row-hasher/internal/match"
)

// ErrConfigSyntax is returned for mappings that do not follow the grammar.
var ErrConfigSyntax = errors.New("mapping syntax error")

// GroupSpec is one output group: the field receiving the digest and the
// columns hashed into it, in order.
type GroupSpec struct {
	OutputName string
	Key        string
	Columns    []ColumnSpec
}

func (g GroupSpec) clone() GroupSpec {
	g.Columns = slices.Clone(g.Columns)
	return g
}

// String renders the group the way it is written in a mapping.
func (g GroupSpec) String() string {
	cols := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		cols[i] = c.String()
	}

	return g.OutputName + "=" + strings.Join(cols, ",")
}

// Configuration is a parsed mapping. It is immutable after Parse.
type Configuration struct {
	caseSensitive bool
	groups        []GroupSpec
	index         map[string]int
	diagnostics   diagnostic.Diagnostics
}

// Parse parses a mapping. A blank mapping yields a configuration with no groups.
func Parse(config string, caseSensitive bool) (*Configuration, error) {
	c := &Configuration{
		caseSensitive: caseSensitive,
		index:         make(map[string]int),
	}

	entries := strings.Split(strings.TrimSpace(config), ";")

	// trailing separators are tolerated, empty entries in between are not
	for len(entries) > 0 && strings.TrimSpace(entries[len(entries)-1]) == "" {
		entries = entries[:len(entries)-1]
	}

	for _, entry := range entries {
		g, err := parseGroup(entry, caseSensitive)
		if err != nil {
			return nil, err
		}

		c.add(g)
	}

	return c, nil
}

// MustParse is Parse that panics on error. Intended for tests and constants.
func MustParse(config string, caseSensitive bool) *Configuration {
	c, err := Parse(config, caseSensitive)
	if err != nil {
		panic(err)
	}

	return c
}

func parseGroup(entry string, caseSensitive bool) (GroupSpec, error) {
	parts := strings.Split(entry, "=")
	if len(parts) != 2 {
		return GroupSpec{}, fmt.Errorf("%w: expected name=columns, found %q", ErrConfigSyntax, strings.TrimSpace(entry))
	}

	name, list := common.Unpack2(parts)

	name = strings.TrimSpace(name)
	if name == "" {
		return GroupSpec{}, fmt.Errorf("%w: missing output name in %q", ErrConfigSyntax, strings.TrimSpace(entry))
	}

	list = strings.TrimSpace(list)
	if list == "" {
		return GroupSpec{}, fmt.Errorf("%w: group %q has no columns", ErrConfigSyntax, name)
	}

	g := GroupSpec{
		OutputName: name,
		Key:        match.Key(name, caseSensitive),
	}

	for col := range strings.SplitSeq(list, ",") {
		spec, err := ParseColumn(col)
		if err != nil {
			return GroupSpec{}, fmt.Errorf("group %q: %w", name, err)
		}

		g.Columns = append(g.Columns, spec)
	}

	return g, nil
}

func (c *Configuration) add(g GroupSpec) {
	pos, dup := c.index[g.Key]
	if !dup {
		c.index[g.Key] = len(c.groups)
		c.groups = append(c.groups, g)

		return
	}

	c.diagnostics.AddWarning(diagnostic.CodeDuplicateGroup,
		fmt.Sprintf("group redeclared, replacing %q", c.groups[pos].String()), g.OutputName, "")
	c.groups[pos] = g
}

// CaseSensitive reports whether group and column names are matched exactly.
func (c *Configuration) CaseSensitive() bool {
	return c.caseSensitive
}

// Len returns the number of groups.
func (c *Configuration) Len() int {
	return len(c.groups)
}

// IsEmpty reports whether the configuration has no groups.
func (c *Configuration) IsEmpty() bool {
	return len(c.groups) == 0
}

// Groups returns the groups in declaration order.
func (c *Configuration) Groups() []GroupSpec {
	out := make([]GroupSpec, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.clone()
	}

	return out
}

// Group looks a group up by output name, honoring case sensitivity.
func (c *Configuration) Group(name string) (GroupSpec, bool) {
	pos, ok := c.index[match.Key(name, c.caseSensitive)]
	if !ok {
		return GroupSpec{}, false
	}

	return c.groups[pos].clone(), true
}

// OutputNames returns the declared output names in order.
func (c *Configuration) OutputNames() []string {
	out := make([]string, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.OutputName
	}

	return out
}

// Diagnostics returns the warnings recorded while parsing.
func (c *Configuration) Diagnostics() diagnostic.Diagnostics {
	return c.diagnostics.Clone()
}

// String renders the configuration in canonical mapping syntax.
func (c *Configuration) String() string {
	parts := make([]string, len(c.groups))
	for i, g := range c.groups {
		parts[i] = g.String()
	}

	return strings.Join(parts, ";")
}
