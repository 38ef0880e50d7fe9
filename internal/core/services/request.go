package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

// ParseRegisterInput decodes a registration body. The body must be a JSON
// object; person and friend, when present, must be strings.
func ParseRegisterInput(body []byte) (ports.RegisterInput, error) {
	var input ports.RegisterInput

	if len(bytes.TrimSpace(body)) == 0 {
		return input, domain.ErrNoBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return input, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	if fields == nil {
		return input, fmt.Errorf("%w: body is not an object", domain.ErrMalformedInput)
	}

	var err error
	if input.Person, err = stringField(fields, "person"); err != nil {
		return input, err
	}
	if input.Friend, err = stringField(fields, "friend"); err != nil {
		return input, err
	}

	return input, nil
}

func stringField(fields map[string]json.RawMessage, name string) (*string, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return nil, fmt.Errorf("%w: %s must be a string", domain.ErrMalformedInput, name)
	}
	return value, nil
}
