package insight

// BuildSpecColumns resolves the role bindings of in against the column
// metadata. A role bound to a name that is not among columns yields a
// *ConfigurationError with the closest column names as suggestions.
func BuildSpecColumns(in Insight, columns []Column) (SpecColumns, error) {
	byName := make(map[string]*Column, len(columns))
	names := make([]string, 0, len(columns))

	for i := range columns {
		c := &columns[i]
		if _, ok := byName[c.Name]; ok {
			continue
		}

		byName[c.Name] = c
		names = append(names, c.Name)
	}

	var out SpecColumns

	for _, role := range Roles() {
		name := in.Columns.Get(role)
		if name == "" {
			continue
		}

		col, ok := byName[name]
		if !ok {
			return SpecColumns{}, &ConfigurationError{
				Chart:       in.Chart,
				Role:        role,
				Column:      name,
				Reason:      "column does not exist",
				Suggestions: Suggest(name, names),
			}
		}

		// Each role gets its own copy.
		c := *col

		switch role {
		case RoleX:
			out.X = &c
		case RoleY:
			out.Y = &c
		case RoleColor:
			out.Color = &c
		case RoleZ:
			out.Z = &c
		case RoleSort:
			out.Sort = &c
		case RoleFacet:
			out.Facet = &c
		case RoleGroup:
			out.Group = &c
		}
	}

	return out, nil
}
