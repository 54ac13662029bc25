// SPDX-License-Identifier: MIT

// Package metrics exports annealing progress as Prometheus metrics. A
// PrometheusObserver plugs into sana runs as their Observer.
package metrics
