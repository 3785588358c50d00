package transport

import (
	"errors"
	"net/http"

	"github.com/viant/marketplace/auth"
)

type RoundTripper struct {
	signer    *auth.Signer
	transport http.RoundTripper
}

func New(signer *auth.Signer, options ...Option) (*RoundTripper, error) {
	if signer == nil {
		return nil, errors.New("signer was nil")
	}
	ret := &RoundTripper{
		signer:    signer,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

func (r *RoundTripper) Signer() *auth.Signer {
	return r.signer
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	signed, err := clone(req)
	if err != nil {
		return nil, err
	}
	if err := r.signer.Sign(signed); err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(signed)
}
