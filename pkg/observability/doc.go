/*
Package observability provides tools for monitoring the circuit engine.

It includes Prometheus metrics and structured logging built on lifecycle hooks,
plus Chain to fan one engine's hooks out to several listeners (metrics, logs,
the HTTP event stream and the visual layer).
*/
package observability
