package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_URL(t *testing.T) {
	var testCases = []struct {
		description string
		endpoint    Endpoint
		key         string
		args        []any
		expect      string
		expectErr   bool
	}{
		{
			description: "default validate",
			endpoint:    DefaultEndpoint(),
			key:         URLValidate,
			expect:      "https://marketplace.mozilla.org:443/api/v1/apps/validation/",
		},
		{
			description: "validation result",
			endpoint:    DefaultEndpoint(),
			key:         URLValidationResult,
			args:        []any{"abc"},
			expect:      "https://marketplace.mozilla.org:443/api/v1/apps/validation/abc/",
		},
		{
			description: "prefixed local",
			endpoint:    Endpoint{Protocol: "http", Domain: "localhost", Port: 8000, Prefix: "/marketplace/"},
			key:         URLContentRatings,
			args:        []any{100},
			expect:      "http://localhost:8000/marketplace/api/v1/apps/app/100/content_ratings/",
		},
		{
			description: "enable",
			endpoint:    DefaultEndpoint(),
			key:         URLEnable,
			args:        []any{"7"},
			expect:      "https://marketplace.mozilla.org:443/api/v1/apps/status/7/",
		},
		{
			description: "missing argument",
			endpoint:    DefaultEndpoint(),
			key:         URLApp,
			expectErr:   true,
		},
		{
			description: "extra argument",
			endpoint:    DefaultEndpoint(),
			key:         URLCategories,
			args:        []any{"1"},
			expectErr:   true,
		},
		{
			description: "unknown key",
			endpoint:    DefaultEndpoint(),
			key:         "unknown",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := testCase.endpoint.URL(testCase.key, testCase.args...)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestParseEndpoint(t *testing.T) {
	var testCases = []struct {
		description string
		raw         string
		expect      Endpoint
		expectErr   bool
	}{
		{
			description: "http with port",
			raw:         "http://localhost:8000",
			expect:      Endpoint{Protocol: "http", Domain: "localhost", Port: 8000},
		},
		{
			description: "http default port",
			raw:         "http://localhost",
			expect:      Endpoint{Protocol: "http", Domain: "localhost", Port: 80},
		},
		{
			description: "https default port with prefix",
			raw:         "https://marketplace.example.com/marketplace/",
			expect:      Endpoint{Protocol: "https", Domain: "marketplace.example.com", Port: 443, Prefix: "/marketplace"},
		},
		{
			description: "bare host",
			raw:         "marketplace.example.com",
			expect:      Endpoint{Protocol: "https", Domain: "marketplace.example.com", Port: 443},
		},
		{
			description: "empty",
			raw:         " ",
			expectErr:   true,
		},
		{
			description: "no host",
			raw:         "http://:8000",
			expectErr:   true,
		},
		{
			description: "invalid port",
			raw:         "http://localhost:port",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := ParseEndpoint(testCase.raw)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestExpect(t *testing.T) {
	assert.Error(t, Expect(nil, "create", "1", 201))
}

func TestWithEndpoint_Prefix(t *testing.T) {
	endpoint := Endpoint{Protocol: "http", Domain: "localhost", Port: 8000}
	var testCases = []struct {
		description string
		options     []Option
		expect      string
	}{
		{
			description: "prefix before endpoint",
			options:     []Option{WithPrefix("/marketplace"), WithEndpoint(endpoint)},
			expect:      "http://localhost:8000/marketplace/api/v1/apps/category/",
		},
		{
			description: "prefix after endpoint",
			options:     []Option{WithEndpoint(endpoint), WithPrefix("/marketplace")},
			expect:      "http://localhost:8000/marketplace/api/v1/apps/category/",
		},
		{
			description: "endpoint prefix wins",
			options:     []Option{WithPrefix("/other"), WithEndpoint(Endpoint{Protocol: "http", Domain: "localhost", Port: 8000, Prefix: "/marketplace"})},
			expect:      "http://localhost:8000/marketplace/api/v1/apps/category/",
		},
	}
	for _, testCase := range testCases {
		client, err := New(testCredentials, append(testCase.options, WithConnection(&recordingFetcher{}))...)
		require.NoError(t, err, testCase.description)
		actual, err := client.URL(URLCategories)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
