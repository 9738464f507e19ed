// Package metrics defines the sinks that observe chart renders and source
// fetches. PromSink and InfluxSink in infra/metrics implement them and can be
// combined with NewMultiSink. NewRenderSink builds the configured set from
// module configs registered by infra/metrics.
package metrics
