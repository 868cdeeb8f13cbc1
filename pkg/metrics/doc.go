// Package metrics exports device session instrumentation to Prometheus.
//
// A Collector implements device.Observer. Attach it with
// device.WithObserver; metrics can be served by any Prometheus handler over
// Registry or written once to a node_exporter textfile with WriteTextfile.
//
//	divelink_operations_total{device,op,status}
//	divelink_operation_duration_seconds{device,op}
//	divelink_transfer_bytes_total{device,direction}
//	divelink_retries_total{device,op}
package metrics
