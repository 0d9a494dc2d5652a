// Package metrics records check pipeline metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default; PrometheusRecorder registers its collectors on a caller-owned
// registry, which can be written out in the node_exporter textfile format with
// WriteTextfile.
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	s, err := site.NewChecker().WithRecorder(recorder).Check(ctx, opts)
//	_ = metrics.WriteTextfile("journal.prom", reg)
package metrics
