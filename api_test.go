// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package enyaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhain/enyaml"
)

// Scenario 1: a Set-only document followed by a document whose $f
// reads the name it bound. Set is consumed and produces no output.
func TestRenderAllSetCarriesAcrossDocuments(t *testing.T) {
	src := "---\n!set\nname: Guido\n---\ngreeting: !$f 'Hello, {name}'"
	en := enyaml.New()
	docs, err := en.RenderAll(src, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, map[string]any{"greeting": "Hello, Guido"}, docs[0])
}

func TestRenderIfSecondBranchTrue(t *testing.T) {
	en := enyaml.New()
	v, err := en.Render("thisisbar: !if [false, foo, true, bar]", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"thisisbar": "bar"}, v)
}

func TestRenderIfFallsThroughToDefault(t *testing.T) {
	en := enyaml.New()
	v, err := en.Render("thisisdefault: !if [false, foo, false, bar, dflt]", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"thisisdefault": "dflt"}, v)
}

func TestRenderIfOmittedWhenNoBranchMatchesAndNoDefault(t *testing.T) {
	en := enyaml.New()
	v, err := en.Render("omitted: !if [false, foo]", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)
}

func TestRenderForSequenceFormFiltersAndFormats(t *testing.T) {
	src := `!for [{!$ myseq: i, ret: !$f "This is {i}", if: !$ "i != 'OMIT'"}]`
	en := enyaml.New()
	vars := map[string]any{"myseq": []any{"a", "OMIT", "b"}}
	v, err := en.Render(src, vars)
	require.NoError(t, err)
	assert.Equal(t, []any{"This is a", "This is b"}, v)
}

func TestRenderForMappingFormMergesEntries(t *testing.T) {
	src := "!for\n!$ people: name\nret:\n  !$ name: 1"
	en := enyaml.New()
	vars := map[string]any{"people": []any{"Alice", "Bob"}}
	v, err := en.Render(src, vars)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Alice": 1, "Bob": 1}, v)
}

func TestRenderExprPreservesIntegerType(t *testing.T) {
	en := enyaml.New()
	v, err := en.Render("x: !$ 1 + 1", nil)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, m["x"])
}

func TestRenderSingleDocumentRejectsMultiDocumentSource(t *testing.T) {
	en := enyaml.New()
	_, err := en.Render("---\na: 1\n---\nb: 2", nil)
	require.Error(t, err)
	var cerr *enyaml.ComposerError
	require.ErrorAs(t, err, &cerr)
}

func TestLoadIsIdenticalToRender(t *testing.T) {
	en := enyaml.New()
	v1, err := en.Render("a: 1", nil)
	require.NoError(t, err)
	v2, err := en.Load("a: 1", nil)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestDumpRoundTripsPlainDocument(t *testing.T) {
	en := enyaml.New()
	v, err := en.Render("name: world\ncount: 3", nil)
	require.NoError(t, err)
	out, err := en.Dump(v)
	require.NoError(t, err)
	v2, err := en.Render(out, nil)
	require.NoError(t, err)
	assert.Equal(t, v, v2)
}
