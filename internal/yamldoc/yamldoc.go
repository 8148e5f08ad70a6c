// Package yamldoc bridges gopkg.in/yaml.v3's *yaml.Node tree and the
// abstract document.Block tree (internal/document): the concrete, but
// swappable, realization of the serializer the migration core delegates to
// and never imports directly.
package yamldoc

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/oriys/boostyaml/internal/document"
)

// ErrNotAMapping is returned decoding a document whose root is not a YAML
// mapping — the migration core only operates on mapping-rooted documents.
var ErrNotAMapping = errors.New("yamldoc: root node is not a mapping")

// Decode parses data as YAML and returns the root document.Block, a Section
// whose children mirror the YAML mapping's keys in file order, comments
// preserved on each Block's Comments.
func Decode(data []byte) (*document.Block, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("yamldoc: parse: %w", err)
	}
	content := &root
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return document.NewSection(), nil
		}
		content = root.Content[0]
	}
	if content.Kind != yaml.MappingNode {
		return nil, ErrNotAMapping
	}
	return decodeMapping(content), nil
}

func decodeMapping(node *yaml.Node) *document.Block {
	sec := document.NewSection()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		child := decodeNode(valNode)
		child.Comments.KeyBefore = keyNode.HeadComment
		child.Comments.KeyInline = keyNode.LineComment
		child.Comments.KeyAfter = keyNode.FootComment
		sec.Put(keyNode.Value, child)
	}
	return sec
}

func decodeNode(node *yaml.Node) *document.Block {
	if node.Kind == yaml.MappingNode {
		b := decodeMapping(node)
		b.Comments.ValueBefore = node.HeadComment
		b.Comments.ValueInline = node.LineComment
		b.Comments.ValueAfter = node.FootComment
		return b
	}
	b := document.NewLeaf(decodeScalar(node))
	b.Comments.ValueBefore = node.HeadComment
	b.Comments.ValueInline = node.LineComment
	b.Comments.ValueAfter = node.FootComment
	return b
}

func decodeScalar(node *yaml.Node) any {
	if node.Kind == yaml.SequenceNode {
		out := make([]any, len(node.Content))
		for i, item := range node.Content {
			out[i] = decodeScalarOrMap(item)
		}
		return out
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return node.Value
	}
	return v
}

func decodeScalarOrMap(node *yaml.Node) any {
	if node.Kind == yaml.MappingNode {
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			m[node.Content[i].Value] = decodeScalarOrMap(node.Content[i+1])
		}
		return m
	}
	return decodeScalar(node)
}

// Encode renders root (a Section) back to YAML bytes, writing each Block's
// Comments onto the corresponding yaml.Node positions.
func Encode(root *document.Block) ([]byte, error) {
	node := encodeNode(root)
	return yaml.Marshal(node)
}

func encodeNode(b *document.Block) *yaml.Node {
	if !b.IsSection() {
		node := &yaml.Node{}
		if err := node.Encode(b.Scalar); err != nil {
			node = &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", b.Scalar)}
		}
		node.HeadComment = b.Comments.ValueBefore
		node.LineComment = b.Comments.ValueInline
		node.FootComment = b.Comments.ValueAfter
		return node
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range b.Keys() {
		child, _ := b.Get(key)
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", key)}
		keyNode.HeadComment = child.Comments.KeyBefore
		keyNode.LineComment = child.Comments.KeyInline
		keyNode.FootComment = child.Comments.KeyAfter
		mapping.Content = append(mapping.Content, keyNode, encodeNode(child))
	}
	mapping.HeadComment = b.Comments.ValueBefore
	mapping.LineComment = b.Comments.ValueInline
	mapping.FootComment = b.Comments.ValueAfter
	return mapping
}
