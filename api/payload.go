package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/schema"
)

// decodePayload reads the request body, drops the "_token" transport field,
// validates what remains against the named schema and decodes it into dst.
func decodePayload(r *http.Request, v *schema.Validator, name string, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperr.NewValidation("/: unable to read request body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return apperr.NewValidation("/: body must be a JSON object")
	}
	delete(fields, "_token")

	doc, err := json.Marshal(fields)
	if err != nil {
		return apperr.Wrap(err, "re-encode payload")
	}
	if err := v.Validate(r.Context(), name, doc); err != nil {
		return err
	}

	if err := json.Unmarshal(doc, dst); err != nil {
		return apperr.NewValidation("/: " + err.Error())
	}

	return nil
}
