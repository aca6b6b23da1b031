// Package middleware groups the fiber middleware mounted in front of every feature.
//
//   - rayid: tags each request with an X-Ray-ID (reused from upstream when present)
//     so the log lines of one sync run can be correlated.
//   - auth: rejects requests without the configured X-API-Key. An empty key leaves
//     the API open, which is how local and test setups run.
//
// rayid must be registered first; auth goes after the public swagger routes.
package middleware
