// Package server holds the HTTP server configuration and route constants.
//
// The daemon mounts the management API under APIPrefix, the Swagger UI under
// /swagger and, when Gateway is enabled, serves the application bundle on
// every other path.
package server
