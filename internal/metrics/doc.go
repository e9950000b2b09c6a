// Package metrics provides build metrics for mdsite.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection needs no nil checks:
//
//	builder := site.NewBuilder(fs, opts).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The one-shot build command keeps the NoopRecorder. The preview server
// registers a PrometheusRecorder and exposes it through HTTPHandler on
// /metrics.
package metrics
