// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound is returned by [Tree.Get] when a segment of the path is
// missing or is not an object.
var ErrPathNotFound = errors.New("path not found")

// Tree is a hierarchical JSON-compatible value rooted at an object.
type Tree map[string]any

// DiffDocument is an opaque structural diff between two trees.
type DiffDocument map[string]any

// NewTree returns an empty tree.
func NewTree() Tree {
	return Tree{}
}

// SplitPath splits a slash separated path into its non-empty segments.
func SplitPath(path string) []string {
	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Get returns the value at path. The empty path returns the tree itself.
func (t Tree) Get(path string) (any, error) {
	var current any = map[string]any(t)
	for _, segment := range SplitPath(path) {
		obj, ok := asObject(current)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		next, ok := obj[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		current = next
	}
	return current, nil
}

// Set stores value at path, creating intermediate objects as needed and
// overwriting non-object intermediates. Setting the empty path is rejected;
// replace the tree instead.
func (t Tree) Set(path string, value any) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return errors.New("cannot set the root of a tree")
	}

	obj := map[string]any(t)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := asObject(obj[segment])
		if !ok {
			next = map[string]any{}
			obj[segment] = next
		}
		obj = next
	}
	obj[segments[len(segments)-1]] = value
	return nil
}

// Delete removes the value at path. Missing paths are ignored.
func (t Tree) Delete(path string) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		clear(t)
		return
	}

	obj := map[string]any(t)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := asObject(obj[segment])
		if !ok {
			return
		}
		obj = next
	}
	delete(obj, segments[len(segments)-1])
}

// Clone returns a deep copy of t made through its JSON form.
func (t Tree) Clone() (Tree, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("error encoding tree: %w", err)
	}
	return DecodeTree(b)
}

// DecodeTree parses a JSON object into a tree. JSON null decodes to an empty
// tree.
func DecodeTree(b []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("error decoding tree: %w", err)
	}
	if t == nil {
		t = NewTree()
	}
	return t, nil
}

// AsTree converts a value returned by [Tree.Get] to a tree when it is an
// object.
func AsTree(v any) (Tree, bool) {
	obj, ok := asObject(v)
	return Tree(obj), ok
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, obj != nil
	case Tree:
		return obj, obj != nil
	default:
		return nil, false
	}
}
