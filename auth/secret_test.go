package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

func TestLoadCredentials(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("plain json", func(t *testing.T) {
		URL := filepath.Join(dir, "plain.json")
		require.NoError(t, os.WriteFile(URL, []byte(`{"consumerKey":"plain-key","consumerSecret":"plain-secret"}`), 0o600))
		credentials, err := LoadCredentials(ctx, URL, "")
		require.NoError(t, err)
		assert.Equal(t, NewCredentials("plain-key", "plain-secret"), credentials)
	})

	t.Run("blowfish encrypted", func(t *testing.T) {
		URL := filepath.Join(dir, "encrypted.json")
		key := "blowfish://default"
		secret := scy.NewSecret(&Credentials{ConsumerKey: "enc-key", ConsumerSecret: "enc-secret"}, scy.NewResource(&Credentials{}, URL, key))
		require.NoError(t, scy.New().Store(ctx, secret))
		data, err := os.ReadFile(URL)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "enc-secret")

		credentials, err := LoadCredentials(ctx, URL, key)
		require.NoError(t, err)
		assert.Equal(t, NewCredentials("enc-key", "enc-secret"), credentials)
	})

	t.Run("missing consumer secret", func(t *testing.T) {
		URL := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(URL, []byte(`{"consumerKey":"key","consumerSecret":""}`), 0o600))
		_, err := LoadCredentials(ctx, URL, "")
		assert.True(t, errors.Is(err, ErrMissingCredentials), "%v", err)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := LoadCredentials(ctx, filepath.Join(dir, "missing.json"), "")
		assert.Error(t, err)
	})
}
