// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Serializer walks a Node tree and emits the corresponding Event
// stream, the inverse of the Composer.

package libyaml

import "strconv"

// PathResolverFunc lets a caller override the tag assigned to a Node found
// at a given structural path, the extension point behind add_path_resolver.
type PathResolverFunc func(path string, n *Node) string

// Serializer turns Node trees into an Event stream consumed by an Emitter.
type Serializer struct {
	pathResolvers map[string]PathResolverFunc
	explicitStart bool
	explicitEnd   bool
}

// NewSerializer creates a Serializer.
func NewSerializer(cfg Config) *Serializer {
	return &Serializer{
		pathResolvers: map[string]PathResolverFunc{},
		explicitStart: cfg.ExplicitStart,
		explicitEnd:   cfg.ExplicitEnd,
	}
}

// AddPathResolver registers fn to run against nodes found at path.
func (s *Serializer) AddPathResolver(path string, fn PathResolverFunc) {
	s.pathResolvers[path] = fn
}

// Serialize emits the Event stream for a single document's Node tree
// (doc.Kind == DocumentNode) to sink.
func (s *Serializer) Serialize(doc *Node, emit func(*Event) error) error {
	if doc.Kind != DocumentNode || len(doc.Content) == 0 {
		return &EmitterError{Message: "serializer: expected a document node"}
	}
	if err := emit(&Event{Type: DOCUMENT_START_EVENT, Implicit: !s.explicitStart}); err != nil {
		return err
	}
	if err := s.serializeNode(doc.Content[0], "", emit); err != nil {
		return err
	}
	return emit(&Event{Type: DOCUMENT_END_EVENT, Implicit: !s.explicitEnd})
}

func (s *Serializer) serializeNode(n *Node, path string, emit func(*Event) error) error {
	tag := []byte(n.Tag)
	if fn, ok := s.pathResolvers[path]; ok {
		tag = []byte(fn(path, n))
	}
	switch n.Kind {
	case AliasNode:
		return emit(&Event{Type: ALIAS_EVENT, Anchor: []byte(n.Alias.Anchor)})
	case ScalarNode:
		return emit(&Event{
			Type: SCALAR_EVENT, Anchor: []byte(n.Anchor), Tag: tag, Value: []byte(n.Value),
			Implicit: n.Tag == "", Style: n.Style,
		})
	case SequenceNode:
		if err := emit(&Event{Type: SEQUENCE_START_EVENT, Anchor: []byte(n.Anchor), Tag: tag, Implicit: n.Tag == "", Style: n.Style}); err != nil {
			return err
		}
		for i, item := range n.Content {
			if err := s.serializeNode(item, childPath(path, i), emit); err != nil {
				return err
			}
		}
		return emit(&Event{Type: SEQUENCE_END_EVENT})
	case MappingNode:
		if err := emit(&Event{Type: MAPPING_START_EVENT, Anchor: []byte(n.Anchor), Tag: tag, Implicit: n.Tag == "", Style: n.Style}); err != nil {
			return err
		}
		for i := 0; i < len(n.Content); i += 2 {
			if err := s.serializeNode(n.Content[i], "", emit); err != nil {
				return err
			}
			if err := s.serializeNode(n.Content[i+1], childPath(path, n.Content[i].Value), emit); err != nil {
				return err
			}
		}
		return emit(&Event{Type: MAPPING_END_EVENT})
	}
	return &EmitterError{Message: "serializer: unknown node kind"}
}

func childPath(base string, key any) string {
	return base + "/" + toPathSegment(key)
}

func toPathSegment(key any) string {
	switch k := key.(type) {
	case int:
		return strconv.Itoa(k)
	case string:
		return k
	}
	return ""
}
