// Package registry holds the installed skill definitions and the effect
// implementations mechanics are bound to.
package registry
