package program

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML returns the program as block-style YAML with the same key order as
// the JSON form.
func (p *Program) YAML() ([]byte, error) {
	raw, err := p.JSON()
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("re-reading program: %w", err)
	}

	plainStyle(&doc)

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding program: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// plainStyle drops the flow and quoting styles inherited from JSON.
func plainStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle

	for _, c := range n.Content {
		plainStyle(c)
	}
}
