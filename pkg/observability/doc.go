/*
Package observability turns editor lifecycle hooks into metrics and structured logs.

Metrics registers Prometheus counters and exposes them as domain.LifecycleHooks; Logging
does the same for a slog.Logger. Combine several hook sets with Compose.
*/
package observability
