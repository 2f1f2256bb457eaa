package insight

// Column is the metadata of one source column.
type Column struct {
	Name         string      `yaml:"name" json:"name"`
	Quantitative bool        `yaml:"quantitative,omitempty" json:"quantitative,omitempty"`
	Stats        ColumnStats `yaml:"stats" json:"stats"`
}

// ColumnStats are statistics precomputed over the column values.
type ColumnStats struct {
	DistinctValueCount int        `yaml:"distinctValueCount" json:"distinctValueCount"`
	Extent             [2]float64 `yaml:"extent,flow" json:"extent"`
}

// Categorical reports whether the column holds discrete values.
func (c *Column) Categorical() bool {
	return c != nil && !c.Quantitative
}

// SpecColumns resolves every role of an insight to its column metadata.
// Unbound roles are nil.
type SpecColumns struct {
	X     *Column
	Y     *Column
	Color *Column
	Z     *Column
	Sort  *Column
	Facet *Column
	Group *Column
}

// Get returns the column bound to role, or nil.
func (s SpecColumns) Get(role Role) *Column {
	switch role {
	case RoleX:
		return s.X
	case RoleY:
		return s.Y
	case RoleColor:
		return s.Color
	case RoleZ:
		return s.Z
	case RoleSort:
		return s.Sort
	case RoleFacet:
		return s.Facet
	case RoleGroup:
		return s.Group
	default:
		return nil
	}
}

// Bound lists the roles that have a column, in role order.
func (s SpecColumns) Bound() []Role {
	var out []Role

	for _, r := range Roles() {
		if s.Get(r) != nil {
			out = append(out, r)
		}
	}

	return out
}

// Names lists the distinct column names bound to any role, in role order.
func (s SpecColumns) Names() []string {
	seen := map[string]struct{}{}

	var out []string

	for _, r := range s.Bound() {
		name := s.Get(r).Name
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
