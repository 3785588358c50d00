package mock

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/marketplace/auth"
)

func TestHandler_ServeHTTP(t *testing.T) {
	credentials := auth.NewCredentials("key", "secret")
	server := NewHTTPTestServer(NewMarketplace(credentials))
	defer server.Close()

	var testCases = []struct {
		description string
		signer      *auth.Signer
		method      string
		path        string
		body        string
		expect      int
	}{
		{description: "unsigned", method: http.MethodGet, path: "/api/v1/apps/category/", expect: http.StatusUnauthorized},
		{description: "wrong secret", signer: auth.NewSigner(auth.NewCredentials("key", "other")), method: http.MethodGet, path: "/api/v1/apps/category/", expect: http.StatusUnauthorized},
		{description: "categories", signer: auth.NewSigner(credentials), method: http.MethodGet, path: "/api/v1/apps/category/", expect: http.StatusOK},
		{description: "unknown resource", signer: auth.NewSigner(credentials), method: http.MethodGet, path: "/api/v1/apps/unknown/", expect: http.StatusNotFound},
		{description: "missing manifest", signer: auth.NewSigner(credentials), method: http.MethodPost, path: "/api/v1/apps/validation/", body: `{}`, expect: http.StatusBadRequest},
		{description: "create without validation", signer: auth.NewSigner(credentials), method: http.MethodPost, path: "/api/v1/apps/app/", body: `{"manifest":"x"}`, expect: http.StatusBadRequest},
		{description: "non numeric app", signer: auth.NewSigner(credentials), method: http.MethodGet, path: "/api/v1/apps/app/abc/", expect: http.StatusNotFound},
	}

	for _, testCase := range testCases {
		req, err := http.NewRequest(testCase.method, server.URL+testCase.path, strings.NewReader(testCase.body))
		require.NoError(t, err, testCase.description)
		req.Header.Set("Content-Type", "application/json")
		if testCase.signer != nil {
			require.NoError(t, testCase.signer.Sign(req), testCase.description)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err, testCase.description)
		_ = resp.Body.Close()
		assert.Equal(t, testCase.expect, resp.StatusCode, testCase.description)
	}
}
