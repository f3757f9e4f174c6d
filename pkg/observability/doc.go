/*
Package observability provides Prometheus instrumentation for state exploration.

Metrics owns a private registry and exposes its collectors through
domain.LifecycleHooks, so the explorer stays unaware of Prometheus.
*/
package observability
