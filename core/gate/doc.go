// Package gate decides whether a session-bearing caller is authorized.
//
// Two tiers of checking exist. CheckLocal is synchronous and network-free:
// decode the cookie blob, check expiry, check role-specific shape. It runs on
// every routed request. Gate.Check additionally asks a remote validator
// whether the access token is still honored, which catches revocation; it
// runs once per data-fetch cycle. Every ambiguous or erroring outcome fails
// closed to Unauthorized.
package gate
