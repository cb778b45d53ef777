package metrics

// InitPrometheusMetrics replaces the discard metrics with the prometheus
// ones. It registers the collectors to the default registry, so it must be
// called once.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Collective = PromCollectiveMetrics()
	API = PromAPIMetrics()
}
