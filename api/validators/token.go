package validators

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidCartToken = errors.New("invalid cart token")

// ParseCartToken validates the opaque cart token shoppers present. Tokens
// are minted server-side as UUIDs, so anything else is rejected before it
// can reach Redis as a key fragment.
func ParseCartToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", ErrInvalidCartToken
	}
	if _, err := uuid.Parse(token); err != nil {
		return "", ErrInvalidCartToken
	}
	return token, nil
}
