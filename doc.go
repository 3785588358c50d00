// Package marketplace provides a client for the marketplace REST API.
//
// Every call is OAuth 1.0a signed (see the auth package) and executed through a
// connection.Connection. Client methods map one logical marketplace operation
// to a fixed URL template and payload shape and return the raw response;
// callers decide which status codes they accept, typically through Expect.
//
// Example:
//
//	client, err := marketplace.New(auth.NewCredentials(key, secret),
//		marketplace.WithEndpoint(marketplace.Endpoint{Protocol: "http", Domain: "localhost", Port: 8000}))
//	if err != nil {
//		return err
//	}
//	resp, err := client.ValidateManifest(ctx, "https://example.com/manifest.webapp")
//	if err != nil {
//		return err
//	}
//	if err = marketplace.Expect(resp, "validate_manifest", "https://example.com/manifest.webapp", http.StatusCreated); err != nil {
//		return err
//	}
//
// The onboard package builds a batch loader on top of the client.
package marketplace
