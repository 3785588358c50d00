package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
)

// SignatureMethod computes oauth_signature for a signature base string.
type SignatureMethod interface {
	Name() string
	Sign(base, key string) (string, error)
}

var (
	// HMACSHA1 is the default marketplace signature method.
	HMACSHA1 SignatureMethod = hmacSHA1{}
	// PlainText sends the signing key itself, only safe over TLS.
	PlainText SignatureMethod = plainText{}
)

type hmacSHA1 struct{}

func (hmacSHA1) Name() string { return "HMAC-SHA1" }

func (hmacSHA1) Sign(base, key string) (string, error) {
	mac := hmac.New(sha1.New, []byte(key))
	if _, err := mac.Write([]byte(base)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

type plainText struct{}

func (plainText) Name() string { return "PLAINTEXT" }

func (plainText) Sign(_, key string) (string, error) {
	return key, nil
}

// LookupSignatureMethod returns a signature method by its oauth_signature_method name.
func LookupSignatureMethod(name string) (SignatureMethod, bool) {
	switch name {
	case HMACSHA1.Name():
		return HMACSHA1, true
	case PlainText.Name():
		return PlainText, true
	}
	return nil, false
}

// signingKey builds the key for two-legged requests, token secret is always empty.
func signingKey(consumerSecret string) string {
	return escape(consumerSecret) + "&"
}
