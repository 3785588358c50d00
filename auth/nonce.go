package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Noncer generates oauth_nonce values.
type Noncer interface {
	Nonce() string
}

type uuidNoncer struct{}

func (uuidNoncer) Nonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NoncerFunc adapts a function to Noncer.
type NoncerFunc func() string

func (f NoncerFunc) Nonce() string { return f() }
