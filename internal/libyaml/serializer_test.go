// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeOne(t *testing.T, src string) *Node {
	t.Helper()
	p := NewParser(src)
	c := NewComposer(p)
	n, err := c.Compose()
	require.NoError(t, err)
	require.Len(t, n.Content, 1)
	return n.Content[0]
}

func emitDoc(t *testing.T, doc *Node, cfg Config) string {
	t.Helper()
	var sb strings.Builder
	ser := NewSerializer(cfg)
	var events []*Event
	push := func(ev *Event) error {
		events = append(events, ev)
		return nil
	}
	events = append(events, &Event{Type: STREAM_START_EVENT})
	require.NoError(t, ser.Serialize(doc, push))
	events = append(events, &Event{Type: STREAM_END_EVENT})
	i := 0
	next := func() (*Event, error) {
		if i >= len(events) {
			return nil, io.EOF
		}
		e := events[i]
		i++
		return e, nil
	}
	err := NewEmitter(&sb, cfg).Emit(next)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return sb.String()
}

func TestComposeSerializeEmitRoundTrip(t *testing.T) {
	n := composeOne(t, "a: 1\nb: [1, 2, 3]\n")
	out := emitDoc(t, &Node{Kind: DocumentNode, Content: []*Node{n}}, DefaultConfig())

	n2 := composeOne(t, out)
	assert.Equal(t, n.Kind, n2.Kind)
	require.Len(t, n2.Content, len(n.Content))
}

func TestSerializerAddPathResolverOverridesTag(t *testing.T) {
	n := composeOne(t, "x: 1\n")
	doc := &Node{Kind: DocumentNode, Content: []*Node{n}}
	ser := NewSerializer(DefaultConfig())
	ser.AddPathResolver("/x", func(path string, n *Node) string {
		return "!!str"
	})
	var events []*Event
	push := func(ev *Event) error {
		events = append(events, ev)
		return nil
	}
	require.NoError(t, ser.Serialize(doc, push))
	var sawOverride bool
	for _, ev := range events {
		if ev.Type == SCALAR_EVENT && string(ev.Tag) == "!!str" {
			sawOverride = true
		}
	}
	assert.True(t, sawOverride)
}
