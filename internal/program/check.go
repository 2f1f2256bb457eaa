package program

import (
	"fmt"
	"maps"
	"strings"

	"vizspec-compiler/internal/diagnostic"
	"vizspec-compiler/internal/expr"
	"vizspec-compiler/internal/symbols"
)

// Diagnostic codes reported by Check.
const (
	CodeDuplicateData      = "duplicate_data"
	CodeUndefinedData      = "undefined_data"
	CodeUnregisteredData   = "unregistered_data"
	CodeDuplicateSignal    = "duplicate_signal"
	CodeUndefinedSignal    = "undefined_signal"
	CodeUnregisteredSignal = "unregistered_signal"
	CodeDuplicateScale     = "duplicate_scale"
	CodeUndefinedScale     = "undefined_scale"
	CodeUnregisteredScale  = "unregistered_scale"
	CodeDuplicateField     = "duplicate_field"
	CodeUndefinedField     = "undefined_field"
	CodeUnregisteredField  = "unregistered_field"
	CodeUnregisteredMark   = "unregistered_mark"
	CodeOutOfOrder         = "out_of_order"
	CodeDataOrder          = "data_order"
)

type position struct {
	data, stage int
}

func (a position) before(b position) bool {
	return a.data < b.data || (a.data == b.data && a.stage < b.stage)
}

type fieldSet map[string]struct{}

func (s fieldSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

type checker struct {
	p     *Program
	reg   *symbols.Registry
	diags *diagnostic.Diagnostics

	base fieldSet

	data      map[string]int
	lineage   []fieldSet
	signals   map[string]int
	stageSigs map[string]position
	fieldDefs map[string][]position
	scales    map[string]int

	deps       [][]int
	crossOrder bool
}

// Check verifies that every name referenced anywhere in p resolves to exactly
// one definition and that transform stages only read fields and signals
// produced by earlier stages. columns are the source columns bound by the
// request; together with the host fields they form the main dataset.
func Check(p *Program, columns []string) *diagnostic.Diagnostics {
	c := &checker{
		p:         p,
		reg:       symbols.Default(),
		diags:     &diagnostic.Diagnostics{},
		base:      fieldSet{},
		data:      map[string]int{},
		lineage:   make([]fieldSet, len(p.Data)),
		signals:   map[string]int{},
		stageSigs: map[string]position{},
		fieldDefs: map[string][]position{},
		scales:    map[string]int{},
		deps:      make([][]int, len(p.Data)),
	}

	for _, col := range columns {
		c.base[col] = struct{}{}
	}

	for _, f := range c.reg.HostFields() {
		c.base[string(f)] = struct{}{}
	}

	c.collect()

	for i := range p.Data {
		c.checkData(i)
	}

	c.suggestDataOrder()

	for i, s := range p.Signals {
		c.checkSignal(i, s)
	}

	for i, s := range p.Scales {
		c.checkScale(i, s)
	}

	c.checkMarks(p.Marks, "marks", markScope{data: map[string]fieldSet{}})

	if p.Layout != nil {
		c.checkValue(p.Layout.Columns, "layout.columns")
		c.checkValue(p.Layout.Padding, "layout.padding")
	}

	return c.diags
}

// collect indexes every definition so references can be classified as
// resolved, out of order or undefined.
func (c *checker) collect() {
	for i, d := range c.p.Data {
		name := string(d.Name)
		if !c.reg.IsData(d.Name) {
			c.diags.AddError(CodeUnregisteredData, "dataset name is not registered", fmt.Sprintf("data[%d]", i), name)
		}

		if prev, ok := c.data[name]; ok {
			c.diags.AddError(CodeDuplicateData, fmt.Sprintf("dataset already defined at data[%d]", prev),
				fmt.Sprintf("data[%d]", i), name)

			continue
		}

		c.data[name] = i
	}

	for i, s := range c.p.Signals {
		name := string(s.Name)
		if !c.reg.IsSignal(s.Name) {
			c.diags.AddError(CodeUnregisteredSignal, "signal name is not registered", fmt.Sprintf("signals[%d]", i), name)
		}

		if prev, ok := c.signals[name]; ok {
			c.diags.AddError(CodeDuplicateSignal, fmt.Sprintf("signal already defined at signals[%d]", prev),
				fmt.Sprintf("signals[%d]", i), name)

			continue
		}

		c.signals[name] = i
	}

	for i, d := range c.p.Data {
		for j, t := range d.Transform {
			at := position{i, j}

			for _, r := range t.Defines() {
				switch r.Kind {
				case expr.RefSignal:
					c.collectStageSignal(r.Name, at, t)
				case expr.RefField:
					c.fieldDefs[r.Name] = append(c.fieldDefs[r.Name], at)
				}
			}
		}
	}

	for i, s := range c.p.Scales {
		name := string(s.Name)
		if !c.reg.IsScale(s.Name) {
			c.diags.AddError(CodeUnregisteredScale, "scale name is not registered", fmt.Sprintf("scales[%d]", i), name)
		}

		if prev, ok := c.scales[name]; ok {
			c.diags.AddError(CodeDuplicateScale, fmt.Sprintf("scale already defined at scales[%d]", prev),
				fmt.Sprintf("scales[%d]", i), name)

			continue
		}

		c.scales[name] = i
	}
}

func (c *checker) collectStageSignal(name string, at position, t Transform) {
	frag := stageFragment(at, t)

	if !c.reg.IsSignal(symbols.Signal(name)) {
		c.diags.AddError(CodeUnregisteredSignal, "signal name is not registered", frag, name)
	}

	if prev, ok := c.signals[name]; ok {
		c.diags.AddError(CodeDuplicateSignal, fmt.Sprintf("signal already defined at signals[%d]", prev), frag, name)
		return
	}

	if prev, ok := c.stageSigs[name]; ok {
		c.diags.AddError(CodeDuplicateSignal,
			fmt.Sprintf("signal already defined by data[%d] transform[%d]", prev.data, prev.stage), frag, name)

		return
	}

	c.stageSigs[name] = at
}

func stageFragment(at position, t Transform) string {
	return fmt.Sprintf("data[%d] transform[%d] (%s)", at.data, at.stage, t.Type())
}

func (c *checker) addDep(i, j int) {
	if i != j && j >= 0 {
		c.deps[i] = append(c.deps[i], j)
	}
}

func (c *checker) checkData(i int) {
	d := c.p.Data[i]
	frag := fmt.Sprintf("data[%d]", i)

	fields := fieldSet{}

	switch {
	case d.Source != "":
		src, ok := c.data[string(d.Source)]

		switch {
		case !ok:
			c.diags.AddError(CodeUndefinedData, "source dataset is not defined", frag, string(d.Source))
		case src >= i:
			c.crossOrder = true
			c.diags.AddError(CodeOutOfOrder, fmt.Sprintf("source dataset is defined later at data[%d]", src),
				frag, string(d.Source))
		default:
			fields = maps.Clone(c.lineage[src])
		}

		if ok {
			c.addDep(i, src)
		}
	case d.Name == symbols.DataMain:
		fields = maps.Clone(c.base)
	}

	for j, t := range d.Transform {
		at := position{i, j}
		sfrag := stageFragment(at, t)

		for _, r := range t.Uses() {
			c.checkStageRef(r, fields, at, sfrag)
		}

		if l, ok := t.(Lookup); ok {
			c.checkLookupSide(l, sfrag)
		}

		switch t := t.(type) {
		case Aggregate:
			fields = fieldSet{}
			for _, g := range t.Groupby {
				fields[string(g)] = struct{}{}
			}
		case Sequence:
			fields = fieldSet{}
		}

		for _, r := range t.Defines() {
			if r.Kind != expr.RefField {
				continue
			}

			if !c.reg.IsField(symbols.Field(r.Name)) {
				c.diags.AddError(CodeUnregisteredField, "emitted field name is not registered", sfrag, r.Name)
			}

			if fields.has(r.Name) {
				c.diags.AddError(CodeDuplicateField, "field is already present in the dataset", sfrag, r.Name)
			}

			fields[r.Name] = struct{}{}
		}
	}

	c.lineage[i] = fields
}

func (c *checker) checkStageRef(r expr.Ref, fields fieldSet, at position, frag string) {
	switch r.Kind {
	case expr.RefField:
		if fields.has(r.Name) {
			return
		}

		for _, def := range c.fieldDefs[r.Name] {
			if def.data == at.data && at.stage < def.stage {
				c.diags.AddError(CodeOutOfOrder, fmt.Sprintf("field is emitted later by transform[%d]", def.stage), frag, r.Name)
				c.diags.Suggest(fmt.Sprintf("move transform[%d] before transform[%d]", def.stage, at.stage))

				return
			}
		}

		c.diags.AddError(CodeUndefinedField, "field is not present in the dataset at this stage", frag, r.Name)
	case expr.RefParentField:
		c.diags.AddError(CodeUndefinedField, "parent fields are only visible inside facet groups", frag, r.Name)
	case expr.RefSignal:
		c.checkSignalRef(r.Name, &at, frag)
	case expr.RefScale:
		c.checkScaleRef(r.Name, frag)
	case expr.RefData:
		j, ok := c.data[r.Name]

		switch {
		case !ok:
			c.diags.AddError(CodeUndefinedData, "dataset is not defined", frag, r.Name)
		case j >= at.data:
			c.crossOrder = true
			c.diags.AddError(CodeOutOfOrder, fmt.Sprintf("dataset is defined later at data[%d]", j), frag, r.Name)
		}

		if ok {
			c.addDep(at.data, j)
		}
	}
}

func (c *checker) checkLookupSide(l Lookup, frag string) {
	j, ok := c.data[string(l.From)]
	if !ok || c.lineage[j] == nil {
		return
	}

	for _, f := range append([]FieldRef{l.Key}, l.Values...) {
		if !c.lineage[j].has(string(f)) {
			c.diags.AddError(CodeUndefinedField, fmt.Sprintf("field is not present in lookup dataset %s", l.From), frag, string(f))
		}
	}
}

// checkSignalRef resolves a signal reference. at is nil outside of data
// pipelines, where every stage signal is visible.
func (c *checker) checkSignalRef(name string, at *position, frag string) {
	if c.reg.IsBuiltinSignal(symbols.Signal(name)) {
		return
	}

	if _, ok := c.signals[name]; ok {
		return
	}

	def, ok := c.stageSigs[name]
	if !ok {
		c.diags.AddError(CodeUndefinedSignal, "signal is not defined", frag, name)
		return
	}

	if at == nil || def.before(*at) {
		if at != nil {
			c.addDep(at.data, def.data)
		}

		return
	}

	if def.data == at.data {
		c.diags.AddError(CodeOutOfOrder, fmt.Sprintf("signal is defined later by transform[%d]", def.stage), frag, name)
		c.diags.Suggest(fmt.Sprintf("move transform[%d] before transform[%d]", def.stage, at.stage))

		return
	}

	c.crossOrder = true
	c.addDep(at.data, def.data)
	c.diags.AddError(CodeOutOfOrder, fmt.Sprintf("signal is defined later by data[%d]", def.data), frag, name)
}

func (c *checker) checkScaleRef(name, frag string) {
	if _, ok := c.scales[name]; !ok {
		c.diags.AddError(CodeUndefinedScale, "scale is not defined", frag, name)
	}
}

// suggestDataOrder reports a dependency-respecting dataset order when some
// dataset reads from one defined after it.
func (c *checker) suggestDataOrder() {
	if !c.crossOrder {
		return
	}

	c.diags.AddError(CodeDataOrder, "datasets are not in dependency order", "data", "")

	order, err := topoSort(len(c.p.Data), func(i int) []int { return c.deps[i] })
	if err != nil {
		c.diags.Suggest("dataset dependencies form a cycle")
		return
	}

	names := make([]string, 0, len(order))
	for _, i := range order {
		names = append(names, string(c.p.Data[i].Name))
	}

	c.diags.Suggest("reorder as: " + strings.Join(names, ", "))
}

// checkGlobalRef resolves a reference made outside of any dataset.
func (c *checker) checkGlobalRef(r expr.Ref, frag string, fields fieldSet, parent fieldSet) {
	switch r.Kind {
	case expr.RefSignal:
		c.checkSignalRef(r.Name, nil, frag)
	case expr.RefScale:
		c.checkScaleRef(r.Name, frag)
	case expr.RefData:
		if _, ok := c.data[r.Name]; !ok {
			c.diags.AddError(CodeUndefinedData, "dataset is not defined", frag, r.Name)
		}
	case expr.RefField:
		if fields == nil {
			c.diags.AddError(CodeUndefinedField, "no dataset is bound here", frag, r.Name)
		} else if !fields.has(r.Name) {
			c.diags.AddError(CodeUndefinedField, "field is not present in the bound dataset", frag, r.Name)
		}
	case expr.RefParentField:
		if !parent.has(r.Name) {
			c.diags.AddError(CodeUndefinedField, "field is not a facet grouping field", frag, r.Name)
		}
	}
}

func (c *checker) checkSignal(i int, s Signal) {
	if s.Update == nil {
		return
	}

	frag := fmt.Sprintf("signals[%d]", i)

	for _, r := range s.Update.Refs() {
		if r.Kind == expr.RefSignal && r.Name == string(s.Name) {
			c.diags.AddError(CodeUndefinedSignal, "signal update reads itself", frag, r.Name)
			continue
		}

		c.checkGlobalRef(r, frag, nil, nil)
	}
}

func (c *checker) checkSignalRefs(ref *SignalRef, frag string) {
	if ref == nil {
		return
	}

	for _, r := range ref.Expr.Refs() {
		c.checkGlobalRef(r, frag, nil, nil)
	}
}

func (c *checker) checkValue(v Value, frag string) {
	c.checkSignalRefs(v.Signal, frag)
}

func (c *checker) datasetFields(name symbols.Data, frag string) fieldSet {
	j, ok := c.data[string(name)]
	if !ok {
		c.diags.AddError(CodeUndefinedData, "dataset is not defined", frag, string(name))
		return nil
	}

	return c.lineage[j]
}

func (c *checker) checkScale(i int, s Scale) {
	frag := fmt.Sprintf("scales[%d]", i)

	if s.Domain.Data != "" {
		fields := c.datasetFields(s.Domain.Data, frag+" domain")
		if fields != nil && !fields.has(string(s.Domain.Field)) {
			c.diags.AddError(CodeUndefinedField, fmt.Sprintf("field is not present in dataset %s", s.Domain.Data),
				frag+" domain", string(s.Domain.Field))
		}
	}

	for _, v := range s.Domain.Values {
		c.checkValue(v, frag+" domain")
	}

	for _, v := range s.Range.Values {
		c.checkValue(v, frag+" range")
	}

	c.checkSignalRefs(s.Range.Count, frag+" range")
	c.checkSignalRefs(s.Reverse, frag+" reverse")
	c.checkSignalRefs(s.PaddingInner, frag+" paddingInner")
	c.checkSignalRefs(s.PaddingOuter, frag+" paddingOuter")
}

type markScope struct {
	data   map[string]fieldSet
	parent fieldSet
}

func (c *checker) checkMarks(marks []Mark, path string, scope markScope) {
	for i, m := range marks {
		frag := fmt.Sprintf("%s[%d] (%s)", path, i, m.Type)

		if m.Name != "" && !c.reg.IsMark(m.Name) {
			c.diags.AddError(CodeUnregisteredMark, "mark name is not registered", frag, string(m.Name))
		}

		var fields fieldSet

		inner := scope
		bound := true

		if m.From != nil {
			switch {
			case m.From.Facet != nil:
				f := m.From.Facet
				fields = c.scopeFields(f.Data, scope, frag)

				if !c.reg.IsData(f.Name) {
					c.diags.AddError(CodeUnregisteredData, "facet name is not registered", frag, string(f.Name))
				}

				if _, ok := c.data[string(f.Name)]; ok {
					c.diags.AddError(CodeDuplicateData, "facet name shadows a dataset", frag, string(f.Name))
				}

				parent := fieldSet{}

				for _, g := range f.Groupby {
					if fields != nil && !fields.has(string(g)) {
						c.diags.AddError(CodeUndefinedField, "facet field is not present in the dataset", frag, string(g))
					}

					parent[string(g)] = struct{}{}
				}

				inner = markScope{data: maps.Clone(scope.data), parent: parent}
				inner.data[string(f.Name)] = fields
				fields = parent
			case m.From.Data != "":
				fields = c.scopeFields(m.From.Data, scope, frag)
				bound = fields != nil
			}
		}

		if m.Sort != nil && bound {
			for _, r := range m.Sort.refs() {
				c.checkGlobalRef(r, frag+" sort", fields, scope.parent)
			}
		}

		m.Encode.Update.Each(func(channel string, p Production) {
			for _, v := range p {
				for _, r := range v.Uses() {
					if r.Kind == expr.RefField && !bound {
						continue
					}

					c.checkGlobalRef(r, frag+" "+channel, fields, scope.parent)
				}
			}
		})

		if len(m.Marks) > 0 {
			c.checkMarks(m.Marks, fmt.Sprintf("%s[%d] marks", path, i), inner)
		}
	}
}

func (c *checker) scopeFields(name symbols.Data, scope markScope, frag string) fieldSet {
	if fields, ok := scope.data[string(name)]; ok {
		return fields
	}

	return c.datasetFields(name, frag)
}
