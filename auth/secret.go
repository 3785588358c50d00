package auth

import (
	"context"
	"fmt"

	"github.com/viant/scy"
)

// LoadCredentials loads consumer credentials from a scy secret resource,
// key is the optional encryption key (i.e. blowfish://default).
func LoadCredentials(ctx context.Context, URL, key string) (Credentials, error) {
	secrets := scy.New()
	resource := scy.NewResource(&Credentials{}, URL, key)
	secret, err := secrets.Load(ctx, resource)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load credentials from %v: %w", URL, err)
	}
	credentials, ok := secret.Target.(*Credentials)
	if !ok || credentials == nil {
		return Credentials{}, fmt.Errorf("unexpected secret type %T at %v", secret.Target, URL)
	}
	if err := credentials.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("invalid credentials at %v: %w", URL, err)
	}
	return *credentials, nil
}
