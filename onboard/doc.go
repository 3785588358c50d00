// Package onboard bulk-loads apps into the marketplace.
//
// Each app is described by a JSON file in a descriptor directory:
//
//	{
//	  "manifest_url": "https://example.com/manifest.webapp",
//	  "categories": ["games"],
//	  "device_types": ["firefoxos"],
//	  "privacy_policy": "We collect nothing"
//	}
//
// All manifests are submitted for validation first, then polled until each
// one is valid. Apps are created and populated with metadata, a screenshot
// and content ratings only once every manifest passed. Any failure stops the
// run; nothing is rolled back.
package onboard
