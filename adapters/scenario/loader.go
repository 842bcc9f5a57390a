package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"infra-tco/core/engine"
	"infra-tco/internal/errors"
)

// Loader parses scenario files. It keeps no parsed state between calls.
type Loader struct {
	variables map[string]cty.Value
}

// NewLoader creates a loader; vars are exposed to expressions as var.<name>
func NewLoader(vars map[string]string) *Loader {
	values := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		values[k] = cty.StringVal(v)
	}
	return &Loader{variables: values}
}

// LoadFile reads and decodes the scenario at path
func (l *Loader) LoadFile(path string) (engine.DeploymentConfig, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return engine.DeploymentConfig{}, errors.Parsing("failed to read scenario "+path, err)
	}
	return l.Parse(src, path)
}

// Parse decodes a scenario from src. filename is used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) (engine.DeploymentConfig, error) {
	// hclparse caches files by name, so each call gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return engine.DeploymentConfig{}, diagError(filename, diags)
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &f)
	if diags.HasErrors() {
		return engine.DeploymentConfig{}, diagError(filename, diags)
	}

	cfg := f.DeploymentConfig()
	if err := cfg.Validate(); err != nil {
		return engine.DeploymentConfig{}, errors.Wrap(errors.TypeParsing, "invalid scenario "+filename, err)
	}
	return cfg, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(l.variables),
		},
	}
}

// diagError folds error diagnostics into one parsing error
func diagError(filename string, diags hcl.Diagnostics) error {
	var msgs []string
	line := 0
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Subject != nil && line == 0 {
			line = d.Subject.Start.Line
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.Summary, d.Detail))
	}
	return errors.Parsing("invalid scenario "+filename, diags).
		WithContext("line", line).
		WithContext("diagnostics", strings.Join(msgs, "; "))
}
