// Package loader mounts features on the fiber router.
//
// A feature is anything that implements Feature: a name, an enabled flag and a
// Load hook that registers routes. start.go registers the inventory sync and
// integrity features with a Manager and calls LoadAll once the middleware chain is
// in place. Disabled features are skipped; the first Load error aborts startup.
package loader
