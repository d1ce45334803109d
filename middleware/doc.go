// Package middleware provides the HTTP middleware chain for the dashboard
// edge: route classification with session enforcement (RouteGuard), request
// ID propagation, and structured request logging.
package middleware
