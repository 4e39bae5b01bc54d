// Package telemetry provides OpenTelemetry initialization and helpers
// for the culinary agent service.
//
// Traces, logs and metrics are exported over OTLP HTTP. The collector
// endpoint may carry a base path (for example Grafana Cloud's "/otlp");
// signal paths are appended to it.
package telemetry
