// Package session defines the credential blob shared by the route guard and
// the KPI fetcher, its base64(JSON) cookie encoding, and the persistent
// stores it lives in.
//
// A session carries an identity (company or admin), an access token, and an
// expiry. It is deliberately unsigned: the routing edge trusts expiry alone,
// while revocation-aware validation happens through the gate package before
// any data is read.
//
// Two copies of a session exist, one in the Store and one in a cookie of the
// same key. The package does not keep them in sync; callers clear both on
// validation failure.
//
// Basic usage:
//
//	sess, err := session.Decode(cookieValue)
//	if err != nil {
//		// malformed blob, fail closed
//	}
//	if err := sess.Validate(session.RoleCompany); err != nil {
//		// expired or incomplete, redirect to login
//	}
package session
