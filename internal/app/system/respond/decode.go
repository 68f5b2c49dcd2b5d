// internal/app/system/respond/decode.go
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing garbage. Failures surface as Invalid domain errors so the
// caller can simply return them.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Invalid("request body is required")
		}
		return apierr.Invalid("malformed JSON body: " + err.Error())
	}
	if dec.More() {
		return apierr.Invalid("request body must contain a single JSON object")
	}
	return nil
}
