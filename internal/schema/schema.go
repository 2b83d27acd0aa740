// Package schema validates request payloads against the JSON schemas embedded
// under schemas/.
package schema

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/jobly/internal/apperr"
)

// Names of the embedded payload schemas.
const (
	CompanyNew  = "company_new"
	CompanyEdit = "company_edit"
	JobNew      = "job_new"
	JobEdit     = "job_edit"
	UserNew     = "user_new"
	UserEdit    = "user_edit"
	Login       = "login"
)

//go:embed schemas/*.json
var files embed.FS

// Validator holds the compiled schemas. It is read-only after New and safe for
// concurrent use.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	entries, err := fs.ReadDir(files, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, e := range entries {
		b, err := fs.ReadFile(files, path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}

		v.schemas[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = rs
	}

	return v, nil
}

// Validate checks doc against the named schema. Constraint violations come
// back as an apperr ValidationFailed error listing "<path>: <message>" for each.
func (v *Validator) Validate(ctx context.Context, name string, doc []byte) error {
	rs, ok := v.schemas[name]
	if !ok {
		return apperr.Wrap(fmt.Errorf("unknown schema %q", name), "validate payload")
	}

	verrs, err := rs.ValidateBytes(ctx, doc)
	if err != nil {
		return apperr.NewValidation("/: body must be a JSON object")
	}
	if len(verrs) == 0 {
		return nil
	}

	details := make([]string, 0, len(verrs))
	for _, ke := range verrs {
		p := ke.PropertyPath
		if p == "" {
			p = "/"
		}
		details = append(details, p+": "+ke.Message)
	}

	return apperr.NewValidation(details...)
}
