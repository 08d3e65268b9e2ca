// Package fieldpath implements the deep-merge primitive the wizard uses to
// fold partial edits into the application document. Every operation is
// side-effect free: inputs are never mutated, and shared sub-trees are copied
// before being written to.
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Merge returns a new document where every key present in update overwrites
// the corresponding key in base, recursively one level at a time. Keys absent
// from update are preserved unchanged, so a partial edit never clobbers
// sibling data. Neither argument is modified.
func Merge(base, update map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(update))
	for key, value := range base {
		out[key] = deepCopy(value)
	}
	for key, value := range update {
		baseChild, baseOK := out[key].(map[string]any)
		updateChild, updateOK := value.(map[string]any)
		if baseOK && updateOK {
			out[key] = Merge(baseChild, updateChild)
			continue
		}
		out[key] = deepCopy(value)
	}
	return out
}

// Set returns a copy of doc with value written at the dotted path, creating
// intermediate maps as needed. Numeric segments index into slices. A path that
// traverses a scalar is reported as an error; the caller (the wizard
// controller) treats that as a programmer mistake, not user input.
func Set(doc map[string]any, path string, value any) (map[string]any, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("fieldpath: empty path")
	}
	out, err := setSegments(doc, segments, value)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fieldpath: path %q does not start at an object", path)
	}
	return m, nil
}

// Get resolves a dotted path against the document. The second return reports
// whether every segment existed.
func Get(doc map[string]any, path string) (any, bool) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, false
	}
	current := any(doc)
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func setSegments(container any, segments []string, value any) (any, error) {
	segment := segments[0]
	rest := segments[1:]

	if idx, err := strconv.Atoi(segment); err == nil {
		slice, ok := container.([]any)
		if !ok && container != nil {
			if _, isMap := container.(map[string]any); !isMap {
				return nil, fmt.Errorf("fieldpath: segment %q addresses a %T", segment, container)
			}
		}
		if ok || container == nil {
			if idx < 0 {
				return nil, fmt.Errorf("fieldpath: negative index %d", idx)
			}
			out := make([]any, len(slice))
			for i, v := range slice {
				out[i] = deepCopy(v)
			}
			for len(out) <= idx {
				out = append(out, nil)
			}
			if len(rest) == 0 {
				out[idx] = deepCopy(value)
				return out, nil
			}
			child, err := setSegments(out[idx], rest, value)
			if err != nil {
				return nil, err
			}
			out[idx] = child
			return out, nil
		}
	}

	var node map[string]any
	switch typed := container.(type) {
	case nil:
		node = map[string]any{}
	case map[string]any:
		node = make(map[string]any, len(typed)+1)
		for k, v := range typed {
			node[k] = deepCopy(v)
		}
	default:
		return nil, fmt.Errorf("fieldpath: segment %q addresses a %T, not an object", segment, container)
	}

	if len(rest) == 0 {
		node[segment] = deepCopy(value)
		return node, nil
	}
	child, err := setSegments(node[segment], rest, value)
	if err != nil {
		return nil, err
	}
	node[segment] = child
	return node, nil
}

func splitPath(path string) []string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
