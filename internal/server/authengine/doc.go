// Package authengine declares what authbridge consumes from the external
// authentication engine: its user records, the magic-link tokens it issues
// and the registration/request context it passes to hooks.
//
// Nothing here mints, validates or expires tokens. Identifiers coming from
// the engine may be integers or strings; CoerceID turns them into the
// opaque string form used everywhere past this boundary.
package authengine
