package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/learnovatex/platform/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError describes one failed field constraint.
type ValidationError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// decodeAndValidate parses a JSON body into dst and applies its validate
// tags. The returned details slice feeds the error envelope.
func decodeAndValidate(r *http.Request, dst interface{}) ([]ValidationError, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidArgument)
	}
	if err := validate.Struct(dst); err != nil {
		var details []ValidationError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, ValidationError{Field: fe.Field(), Code: fe.Tag()})
			}
		}
		return details, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument)
	}
	return nil, nil
}
