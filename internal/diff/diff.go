// Package diff computes structural differences between two trees.
//
// A difference is expressed as an update document with up to two operators,
// in the spirit of MongoDB update documents:
//
//	{"$set": {"a.b": 1, "list": [1, 2]}, "$unset": {"old": true}}
//
// Keys are dotted paths from the root. Objects are compared key by key,
// arrays of equal length element by element; anything else that differs is
// replaced as a whole with $set.
package diff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/MKhiriev/go-live-sync/models"
)

const (
	// OpSet holds paths whose value was added or changed.
	OpSet = "$set"
	// OpUnset holds paths that were removed.
	OpUnset = "$unset"
)

// Diff returns the document transforming before into after. changed is false
// when both trees are structurally identical, in which case doc is nil.
//
// Both trees are normalised through their JSON form first, so numeric values
// compare equal regardless of the Go type they were stored with.
func Diff(before, after models.Tree) (doc models.DiffDocument, changed bool, err error) {
	b, err := normalize(before)
	if err != nil {
		return nil, false, fmt.Errorf("error normalizing before tree: %w", err)
	}
	a, err := normalize(after)
	if err != nil {
		return nil, false, fmt.Errorf("error normalizing after tree: %w", err)
	}

	set := map[string]any{}
	unset := map[string]any{}
	walkObject("", b, a, set, unset)

	if len(set) == 0 && len(unset) == 0 {
		return nil, false, nil
	}

	doc = models.DiffDocument{}
	if len(set) > 0 {
		doc[OpSet] = set
	}
	if len(unset) > 0 {
		doc[OpUnset] = unset
	}
	return doc, true, nil
}

func walkObject(prefix string, before, after map[string]any, set, unset map[string]any) {
	for _, key := range sortedKeys(before) {
		if _, ok := after[key]; !ok {
			unset[join(prefix, key)] = true
		}
	}

	for _, key := range sortedKeys(after) {
		path := join(prefix, key)
		av := after[key]
		bv, ok := before[key]
		if !ok {
			set[path] = av
			continue
		}
		walkValue(path, bv, av, set, unset)
	}
}

func walkValue(path string, before, after any, set, unset map[string]any) {
	switch av := after.(type) {
	case map[string]any:
		bv, ok := before.(map[string]any)
		if !ok {
			set[path] = av
			return
		}
		walkObject(path, bv, av, set, unset)
	case []any:
		bv, ok := before.([]any)
		if !ok || len(bv) != len(av) {
			set[path] = av
			return
		}
		for i := range av {
			walkValue(join(path, strconv.Itoa(i)), bv[i], av[i], set, unset)
		}
	default:
		if _, composite := before.(map[string]any); composite {
			set[path] = av
			return
		}
		if _, composite := before.([]any); composite {
			set[path] = av
			return
		}
		if before != after {
			set[path] = av
		}
	}
}

func normalize(t models.Tree) (map[string]any, error) {
	if t == nil {
		return map[string]any{}, nil
	}

	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err = json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
