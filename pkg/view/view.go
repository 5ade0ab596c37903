// Package view renders models as plain maps for transport. Relationships
// are followed according to a rule table keyed by the root's kind, and no
// record is embedded inside itself.
package view

import "errors"

// MaxDepth bounds how many relationship hops a view may contain
const MaxDepth = 3

// ErrNilEntity is returned when Serialize is given a nil model
var ErrNilEntity = errors.New("view: nil entity")

type serializer struct {
	maxDepth int
	rules    func(origin Kind) Rules
}

var defaultSerializer = serializer{
	maxDepth: MaxDepth,
	rules:    func(origin Kind) Rules { return originRules[origin] },
}

// Serialize renders a model (value or pointer) as a field name to value map
func Serialize(entity interface{}) (map[string]interface{}, error) {
	return defaultSerializer.serialize(entity)
}

// SerializeAll renders every element of a model slice
func SerializeAll[T any](items []T) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		rendered, err := Serialize(items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

func (s serializer) serialize(entity interface{}) (map[string]interface{}, error) {
	root, err := describe(entity)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNilEntity
	}

	w := walker{rules: s.rules(root.kind), maxDepth: s.maxDepth, path: make(map[interface{}]bool)}
	return w.render(root, 0), nil
}

type walker struct {
	rules    Rules
	maxDepth int
	path     map[interface{}]bool
}

// render copies the node's fields and follows the allowed edges. Records
// already on the current path are skipped.
func (w walker) render(n *node, depth int) map[string]interface{} {
	out := make(map[string]interface{}, len(n.fields)+len(graph[n.kind]))
	for k, v := range n.fields {
		out[k] = v
	}
	if depth >= w.maxDepth {
		return out
	}

	w.path[n.key] = true
	defer delete(w.path, n.key)

	for _, edge := range graph[n.kind] {
		if !w.rules.allows(n.kind, edge.Name) {
			continue
		}

		target := n.link(edge.Name)
		if edge.Many {
			items, _ := target.([]interface{})
			list := make([]map[string]interface{}, 0, len(items))
			for _, item := range items {
				child, _ := describe(item)
				if child == nil || w.path[child.key] {
					continue
				}
				list = append(list, w.render(child, depth+1))
			}
			out[edge.Name] = list
			continue
		}

		child, _ := describe(target)
		if child == nil || w.path[child.key] {
			continue
		}
		out[edge.Name] = w.render(child, depth+1)
	}
	return out
}
