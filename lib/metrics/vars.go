package metrics

var (
	Collective = NopCollectiveMetrics()
	API        = NopAPIMetrics()
)
