// Package connectors contains local copies of the Dex connector configuration
// types that the auth settings page reads.
//
// Dex publishes v2.x tags without a /v2 module path, so the types cannot be
// imported from github.com/dexidp/dex. Only the fields that are decoded from
// the dex config secret are kept.
//
// See: https://github.com/dexidp/dex/tree/main/connector
package connectors
