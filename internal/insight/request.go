package insight

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Request bundles everything a compile needs.
type Request struct {
	Insight Insight     `yaml:"insight" json:"insight"`
	Columns []Column    `yaml:"columns" json:"columns"`
	View    ViewOptions `yaml:"view" json:"view"`
}

// LoadFile loads a request from path. Files ending in .hcl are read as HCL,
// everything else as YAML (which includes JSON).
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(data, path)
	}

	return Parse(data)
}

// Parse parses a YAML or JSON request. Unknown keys are rejected.
func Parse(data []byte) (*Request, error) {
	var req Request

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	applyDefaults(&req)

	return &req, nil
}

// applyDefaults fills in default values for unset view options.
func applyDefaults(req *Request) {
	def := DefaultViewOptions()
	v := &req.View

	if v.MaxLegends == 0 {
		v.MaxLegends = def.MaxLegends
	}

	if v.Colors.Default == "" {
		v.Colors.Default = def.Colors.Default
	}

	if v.Colors.Scheme == "" {
		v.Colors.Scheme = def.Colors.Scheme
	}

	if v.Colors.CategoricalScheme == "" {
		v.Colors.CategoricalScheme = def.Colors.CategoricalScheme
	}

	if v.Colors.BinCount == 0 {
		v.Colors.BinCount = def.Colors.BinCount
	}

	labels := languageLabels(def.Language)
	for k, val := range languageLabels(v.Language) {
		if val != "" {
			labels[k] = val
		}
	}

	v.Language = languageFromLabels(labels)
}

// Marshal serializes a request to YAML.
func Marshal(req *Request) ([]byte, error) {
	return yaml.Marshal(req)
}

// WriteFile writes a request to path as YAML.
func WriteFile(req *Request, path string) error {
	data, err := Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write request file %s: %w", path, err)
	}

	return nil
}

// LabelKeys lists the keys of the localized labels, as used in request files.
func LabelKeys() []string {
	out := make([]string, 0, 20)

	var node yaml.Node
	if err := node.Encode(DefaultLanguage()); err != nil {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, node.Content[i].Value)
	}

	return out
}

// languageLabels flattens l into its request-file keys.
func languageLabels(l Language) map[string]string {
	out := map[string]string{}

	var node yaml.Node
	if err := node.Encode(l); err != nil {
		return out
	}

	_ = node.Decode(&out)

	return out
}

func languageFromLabels(labels map[string]string) Language {
	var l Language

	var node yaml.Node
	if err := node.Encode(labels); err != nil {
		return l
	}

	_ = node.Decode(&l)

	return l
}
