// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVarsSplitsOnFirstEquals(t *testing.T) {
	vars, err := parseVars([]string{"name=Guido", "greeting=hi=there"})
	require.NoError(t, err)
	assert.Equal(t, "Guido", vars["name"])
	assert.Equal(t, "hi=there", vars["greeting"])
}

func TestParseVarsRejectsMissingEquals(t *testing.T) {
	_, err := parseVars([]string{"noequals"})
	require.Error(t, err)
}

func TestRunRenderWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "in.yaml")
	outPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(tmplPath, []byte("greeting: !$f 'Hello, {name}'"), 0o644))

	outputPath = outPath
	varFlags = []string{"name=Guido"}
	defer func() {
		outputPath = ""
		varFlags = nil
	}()

	cmd := newRootCmd()
	cmd.SetArgs([]string{tmplPath})
	require.NoError(t, runRender(cmd, []string{tmplPath}))

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Hello, Guido")
}

func TestRunRenderReportsMissingTemplate(t *testing.T) {
	cmd := newRootCmd()
	err := runRender(cmd, []string{"/does/not/exist.yaml"})
	require.Error(t, err)
}

func TestRunRenderReadsStdinWhenNoTemplateGiven(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.yaml")

	outputPath = outPath
	varFlags = []string{"name=Guido"}
	defer func() {
		outputPath = ""
		varFlags = nil
	}()

	cmd := newRootCmd()
	cmd.SetIn(bytes.NewBufferString("greeting: !$f 'Hello, {name}'"))
	require.NoError(t, runRender(cmd, nil))

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Hello, Guido")
}
