/*
Package observability provides tools for monitoring the skilltree engine.

It includes lifecycle hooks for structured logging of casts and traversal, and
Prometheus metrics fed by the same hooks. Combine them with
domain.LifecycleHooks.Merge.
*/
package observability
