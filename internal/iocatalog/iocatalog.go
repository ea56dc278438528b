// Package iocatalog reads the Query Catalog from catalog.yaml. SQL of
// every statement is a text/template rendered with the sources section
// of the configuration, so S3 paths and the IAM role live in one place.
package iocatalog

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/config"
	"gopkg.in/yaml.v3"
)

// document is the layout of catalog.yaml.
type document struct {
	StagingFull []catalog.Statement `yaml:"staging_full"`
	StagingTest []catalog.Statement `yaml:"staging_test"`
	Populate    []catalog.Statement `yaml:"populate"`
}

// Load reads, renders and validates the catalog file.
func Load(path string, src config.SourcesConfig) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	res, err := Parse(data, src)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded query catalog",
		"path", path,
		"staging_full", res.StagingFull.Len(),
		"staging_test", res.StagingTest.Len(),
		"populate", res.Populate.Len(),
	)
	return res, nil
}

// Parse decodes catalog YAML, renders statements and validates the result.
// Unknown top-level keys are rejected.
func Parse(data []byte, src config.SourcesConfig) (*catalog.Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, ParseError(err)
	}

	res := catalog.New(doc.StagingFull, doc.StagingTest, doc.Populate)
	for _, l := range res.Lists() {
		if err := render(l, src); err != nil {
			return nil, err
		}
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// render replaces SQL of the list statements in place.
func render(l catalog.StatementList, src config.SourcesConfig) error {
	for i := range l.Statements {
		st := &l.Statements[i]
		name := fmt.Sprintf("%s[%d]", l.ID, i)

		tmpl, err := template.New(name).
			Option("missingkey=error").
			Parse(st.SQL)
		if err != nil {
			return RenderError(l.ID, i, st.Name, err)
		}

		var buf strings.Builder
		if err = tmpl.Execute(&buf, src); err != nil {
			return RenderError(l.ID, i, st.Name, err)
		}
		st.SQL = buf.String()
	}
	return nil
}
