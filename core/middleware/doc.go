// Package middleware groups the Fiber middleware of the service.
//
//   - auth: checks the API key on the /api group. The gateway stays public.
//   - rayid: tags each request with a Ray ID (X-Ray-ID), reusing an incoming
//     one, so logs from the API, the gateway and the synchronizer correlate.
package middleware
