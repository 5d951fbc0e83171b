package settings

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const whitelistKey = "whitelist"

// Document is the parsed configuration document. It keeps the full node
// tree so edits leave comments, ordering and unknown keys untouched.
type Document struct {
	root yaml.Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.root = yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
	return d
}

// ParseDocument parses YAML bytes. Empty input yields an empty document.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}

	d := &Document{}
	if err := yaml.Unmarshal(data, &d.root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}
	if d.mapping() == nil {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrDocument)
	}
	return d, nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d.root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Snapshot decodes the document into a snapshot. A document whose fields
// cannot be decoded falls back to Defaults as a whole.
func (d *Document) Snapshot() (Snapshot, []string) {
	var raw rawConfig
	if err := d.root.Decode(&raw); err != nil {
		return Defaults(), []string{fmt.Sprintf("config document could not be decoded, using defaults: %v", err)}
	}
	return raw.snapshot()
}

// Whitelist returns the allowlist entries in document order.
func (d *Document) Whitelist() []string {
	_, seq := d.lookup(whitelistKey)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return []string{}
	}
	ids := make([]string, 0, len(seq.Content))
	for _, n := range seq.Content {
		if n.Kind == yaml.ScalarNode {
			ids = append(ids, n.Value)
		}
	}
	return normalizeIDs(ids)
}

// SetWhitelist replaces the allowlist sequence, leaving the rest of the
// document as it was.
func (d *Document) SetWhitelist(ids []string) error {
	m := d.mapping()
	if m == nil {
		return fmt.Errorf("%w: top level is not a mapping", ErrDocument)
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, id := range ids {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id})
	}

	key, old := d.lookup(whitelistKey)
	if key == nil {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: whitelistKey},
			seq,
		)
		return nil
	}

	if old.Kind == yaml.SequenceNode && len(ids) > 0 {
		seq.Style = old.Style
	}
	seq.HeadComment, seq.LineComment, seq.FootComment = old.HeadComment, old.LineComment, old.FootComment
	*old = *seq
	return nil
}

func (d *Document) mapping() *yaml.Node {
	if d.root.Kind != yaml.DocumentNode || len(d.root.Content) == 0 {
		return nil
	}
	m := d.root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	return m
}

func (d *Document) lookup(key string) (*yaml.Node, *yaml.Node) {
	m := d.mapping()
	if m == nil {
		return nil, nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i], m.Content[i+1]
		}
	}
	return nil, nil
}

// normalizeIDs trims entries and drops blanks, keeping order and duplicates.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
