package patentdoc

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Node is a string-keyed mapping that remembers insertion order. It is the
// building block of a parsed patent document: the root and every nested
// value are Nodes.
//
// Values are one of string, *Node, []any or nil. Setting an existing key
// replaces its value but keeps the key at its original position.
type Node struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewNode returns an empty Node.
func NewNode() *Node {
	return &Node{m: orderedmap.New[string, any]()}
}

// Set stores value under key.
func (n *Node) Set(key string, value any) {
	n.m.Set(key, value)
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	return n.m.Get(key)
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if n == nil {
		return false
	}
	_, ok := n.m.Delete(key)
	return ok
}

// Node returns the nested Node stored under key, or nil if the key is
// absent or holds a different kind of value.
func (n *Node) Node(key string) *Node {
	v, _ := n.Get(key)
	child, _ := v.(*Node)
	return child
}

// List returns the list stored under key, or nil if the key is absent or
// holds a different kind of value.
func (n *Node) List(key string) []any {
	v, _ := n.Get(key)
	list, _ := v.([]any)
	return list
}

// Append adds value to the list stored under key, creating the list on
// first use. It reports false if key already holds a non-list value, in
// which case that value is replaced by a new single-element list.
func (n *Node) Append(key string, value any) bool {
	existing, ok := n.Get(key)
	if !ok {
		n.Set(key, []any{value})
		return true
	}
	list, isList := existing.([]any)
	n.Set(key, append(list, value))
	return isList
}

// Len returns the number of keys.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return n.m.Len()
}

// Keys returns the keys in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.Len())
	for k := range n.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over key/value pairs in insertion order.
func (n *Node) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if n == nil {
			return
		}
		for pair := n.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Merge copies every pair of other into n, in other's order.
func (n *Node) Merge(other *Node) {
	for k, v := range other.All() {
		n.Set(k, v)
	}
}

// MarshalJSON encodes the Node as a JSON object with keys in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return n.m.MarshalJSON()
}

// MarshalYAML encodes the Node as a YAML mapping with keys in insertion order.
func (n *Node) MarshalYAML() (any, error) {
	if n == nil {
		return nil, nil
	}
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for key, value := range n.All() {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return nil, err
		}
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&v,
		)
	}
	return out, nil
}
