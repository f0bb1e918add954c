// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dhain/enyaml"
)

var (
	outputPath string
	verbose    bool
	varFlags   []string

	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "enyaml [template]",
		Short:         "Render an ENYAML template to plain YAML",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRender,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write rendered YAML to this file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log rendering steps and print full error causes")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "template variable as key=value, may be repeated")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	configureLogging()

	var src []byte
	var err error
	if len(args) == 0 {
		log.Debug("reading template from stdin")
		src, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "reading template from stdin")
		}
	} else {
		templatePath := args[0]
		log.WithField("path", templatePath).Debug("reading template")
		src, err = os.ReadFile(templatePath)
		if err != nil {
			return errors.Wrapf(err, "reading template %s", templatePath)
		}
	}

	vars, err := parseVars(varFlags)
	if err != nil {
		return errors.Wrap(err, "parsing --var")
	}

	log.WithField("vars", vars).Debug("rendering")
	engine := enyaml.New()
	rendered, err := engine.Render(string(src), vars)
	if err != nil {
		return errors.Wrap(err, "rendering template")
	}

	out, err := engine.Dump(rendered)
	if err != nil {
		return errors.Wrap(err, "dumping rendered document")
	}

	if outputPath == "" {
		_, err = fmt.Fprint(os.Stdout, out)
		return err
	}
	log.WithField("path", outputPath).Debug("writing output")
	return errors.Wrapf(os.WriteFile(outputPath, []byte(out), 0o644), "writing output %s", outputPath)
}

func configureLogging() {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("ENYAML_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
		return
	}
	log.SetLevel(logrus.WarnLevel)
}

func parseVars(flags []string) (map[string]any, error) {
	vars := make(map[string]any, len(flags))
	for _, f := range flags {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return nil, errors.Errorf("expected key=value, got %q", f)
		}
		vars[k] = v
	}
	return vars, nil
}
