package api

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode coerces an untyped payload returned by Call into out, matching
// fields by their json tags.
func Decode(payload any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
