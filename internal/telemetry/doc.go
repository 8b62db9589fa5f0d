// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics across the sous server and CLI.
//
// The package configures OTLP HTTP export, with support for collectors
// mounted under a base path (Grafana Cloud "/otlp", Better Stack, local Tempo).
package telemetry
