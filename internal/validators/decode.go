package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/go-viper/mapstructure/v2"
)

// DecodeJSON reads a JSON object from body, sanitizes every string in it
// and checks the required fields. The sanitized map is returned so callers
// can inspect which keys were actually sent.
//
// A body that is not a JSON object yields a validation error. A JSON null
// decodes to an empty map.
func DecodeJSON(body io.Reader, required ...string) (map[string]any, error) {
	raw := make(map[string]any)
	// an empty body is an empty object
	if err := json.NewDecoder(body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, apierr.Validation(MsgInvalidJSON, nil).WithCause(fmt.Errorf("%w: %w", ErrDecodingPayload, err))
	}

	if raw == nil {
		raw = make(map[string]any)
	}

	data := SanitizeMap(raw)
	if err := ValidateRequired(data, required...); err != nil {
		return nil, err
	}

	return data, nil
}

// Bind copies the sanitized map into dst, a pointer to a request struct
// tagged with `mapstructure`. Scalars are coerced where unambiguous
// (e.g. a JSON number into a string field).
func Bind(data map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return apierr.Internal(fmt.Errorf("failed to create decoder: %w", err))
	}

	if err = decoder.Decode(data); err != nil {
		return apierr.Validation(MsgInvalidPayload, nil).WithCause(fmt.Errorf("%w: %w", ErrDecodingPayload, err))
	}
	return nil
}

// Decode is [DecodeJSON] followed by [Bind].
func Decode(body io.Reader, dst any, required ...string) (map[string]any, error) {
	data, err := DecodeJSON(body, required...)
	if err != nil {
		return nil, err
	}
	if err = Bind(data, dst); err != nil {
		return nil, err
	}
	return data, nil
}
