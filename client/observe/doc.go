// Package observe instruments request contexts through their signals:
// Prometheus metrics and lifecycle records published over NATS.
package observe
