// Package mock provides an in-memory marketplace API served over httptest.
//
// Every request must carry a valid OAuth 1.0a signature for the configured
// consumer credentials, otherwise the server replies 401. Validations, apps
// and screenshots are kept in memory and all authenticated calls are recorded
// so that tests can assert on request order and payloads.
package mock
