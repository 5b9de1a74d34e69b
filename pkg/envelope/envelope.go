// Package envelope frames a salt and a payload into the single string that is
// persisted or transmitted: "<hex salt>::<hex payload>".
//
// Both fields are lower-case hex, so the separator can never appear inside
// either of them.
package envelope

import (
	"encoding/hex"
	"errors"
	"strings"
)

// Separator joins the encoded salt and payload.
const Separator = "::"

var (
	// ErrMalformed is returned when a string does not split into exactly two
	// non-empty hex fields.
	ErrMalformed = errors.New("malformed envelope")
	// ErrEmptyField is returned by Encode when salt or payload is empty.
	ErrEmptyField = errors.New("envelope field must not be empty")
)

// Encode returns hex(salt) + Separator + hex(payload).
func Encode(salt, payload []byte) (string, error) {
	if len(salt) == 0 || len(payload) == 0 {
		return "", ErrEmptyField
	}
	var b strings.Builder
	b.Grow(hex.EncodedLen(len(salt)) + len(Separator) + hex.EncodedLen(len(payload)))
	b.WriteString(hex.EncodeToString(salt))
	b.WriteString(Separator)
	b.WriteString(hex.EncodeToString(payload))
	return b.String(), nil
}

// Decode splits s and decodes both fields.
func Decode(s string) (salt, payload []byte, err error) {
	parts := strings.Split(s, Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil, ErrMalformed
	}

	salt, err = hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, errors.Join(ErrMalformed, err)
	}
	payload, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, errors.Join(ErrMalformed, err)
	}
	return salt, payload, nil
}
