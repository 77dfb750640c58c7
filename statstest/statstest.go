/*
 *
 * Copyright 2026 MeshRPC authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

// Package statstest provides an in-memory stats plugin that retains every
// measurement routed to it, for use in tests of instrumented components.
// Counters are kept as cumulative sums and histograms as raw unordered
// samples, keyed by instrument and label values.
package statstest

import (
	"strings"
	"sync"

	"github.com/meshrpc/telemetry"
)

// measurementKey identifies one aggregation cell: an instrument (by handle
// index within its kind) plus the exact label values it was recorded with.
type measurementKey struct {
	index  int
	labels string
}

func keyFor(index int, labels, optionalLabels []string) measurementKey {
	all := make([]string, 0, len(labels)+len(optionalLabels))
	all = append(all, labels...)
	all = append(all, optionalLabels...)
	return measurementKey{index: index, labels: strings.Join(all, "\x1f")}
}

// Plugin is a telemetry.StatsPlugin that records into process memory.
//
// Construct with New or RegisterPluginForTarget; the zero value is not usable.
type Plugin struct {
	instruments *telemetry.InstrumentRegistry
	domain      string
	enabled     *telemetry.MetricSet

	mu                sync.Mutex
	int64Counters     map[measurementKey]int64
	float64Counters   map[measurementKey]float64
	int64Histograms   map[measurementKey][]int64
	float64Histograms map[measurementKey][]float64
}

// Option configures a Plugin at construction time.
type Option func(*Plugin)

// WithDomain scopes the plugin to channels whose target matches domain under
// the default domain-suffix policy. Without this option the plugin matches
// every channel.
func WithDomain(domain string) Option {
	return func(p *Plugin) { p.domain = domain }
}

// WithEnabledMetrics opts the plugin in to the named instruments that are not
// on by default. Measurements for a non-default instrument without an opt-in
// are silently discarded.
func WithEnabledMetrics(metrics *telemetry.MetricSet) Option {
	return func(p *Plugin) { p.enabled = metrics }
}

// New returns a plugin that validates and resolves handles against
// instruments. The caller still has to register it on a plugin registry for
// channels to route measurements to it.
func New(instruments *telemetry.InstrumentRegistry, opts ...Option) *Plugin {
	p := &Plugin{
		instruments:       instruments,
		int64Counters:     make(map[measurementKey]int64),
		float64Counters:   make(map[measurementKey]float64),
		int64Histograms:   make(map[measurementKey][]int64),
		float64Histograms: make(map[measurementKey][]float64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterPluginForTarget creates a plugin scoped to domain by the default
// suffix policy and registers it on plugins.
func RegisterPluginForTarget(plugins *telemetry.PluginRegistry, domain string) *Plugin {
	p := New(plugins.Instruments(), WithDomain(domain))
	plugins.Register(p)
	return p
}

// Matches implements telemetry.StatsPlugin using the default domain-suffix
// policy on the scope's target.
func (p *Plugin) Matches(scope telemetry.ChannelScope) bool {
	return telemetry.DomainMatchesTarget(p.domain, scope.Target)
}

func (p *Plugin) recordable(desc telemetry.InstrumentDescriptor) bool {
	return desc.Default || p.enabled.Contains(desc.Name)
}

// AddInt64Counter implements telemetry.StatsPlugin.
func (p *Plugin) AddInt64Counter(handle telemetry.Int64CounterHandle, incr int64, labels, optionalLabels []string) {
	if !p.recordable(p.instruments.Int64CounterDescriptor(handle)) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.int64Counters[keyFor(handle.Index(), labels, optionalLabels)] += incr
}

// AddFloat64Counter implements telemetry.StatsPlugin.
func (p *Plugin) AddFloat64Counter(handle telemetry.Float64CounterHandle, incr float64, labels, optionalLabels []string) {
	if !p.recordable(p.instruments.Float64CounterDescriptor(handle)) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.float64Counters[keyFor(handle.Index(), labels, optionalLabels)] += incr
}

// RecordInt64Histogram implements telemetry.StatsPlugin.
func (p *Plugin) RecordInt64Histogram(handle telemetry.Int64HistogramHandle, sample int64, labels, optionalLabels []string) {
	if !p.recordable(p.instruments.Int64HistogramDescriptor(handle)) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := keyFor(handle.Index(), labels, optionalLabels)
	p.int64Histograms[key] = append(p.int64Histograms[key], sample)
}

// RecordFloat64Histogram implements telemetry.StatsPlugin.
func (p *Plugin) RecordFloat64Histogram(handle telemetry.Float64HistogramHandle, sample float64, labels, optionalLabels []string) {
	if !p.recordable(p.instruments.Float64HistogramDescriptor(handle)) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := keyFor(handle.Index(), labels, optionalLabels)
	p.float64Histograms[key] = append(p.float64Histograms[key], sample)
}

// Int64CounterValue returns the cumulative sum recorded against the handle
// with exactly the given label values. ok is false if nothing was recorded,
// which is distinct from a recorded sum of zero.
func (p *Plugin) Int64CounterValue(handle telemetry.Int64CounterHandle, labels, optionalLabels []string) (value int64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok = p.int64Counters[keyFor(handle.Index(), labels, optionalLabels)]
	return value, ok
}

// Float64CounterValue returns the cumulative sum recorded against the handle
// with exactly the given label values.
func (p *Plugin) Float64CounterValue(handle telemetry.Float64CounterHandle, labels, optionalLabels []string) (value float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok = p.float64Counters[keyFor(handle.Index(), labels, optionalLabels)]
	return value, ok
}

// Int64HistogramSamples returns every sample recorded against the handle with
// exactly the given label values. No ordering is guaranteed. ok is false if
// nothing was recorded.
func (p *Plugin) Int64HistogramSamples(handle telemetry.Int64HistogramHandle, labels, optionalLabels []string) (samples []int64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	got, ok := p.int64Histograms[keyFor(handle.Index(), labels, optionalLabels)]
	if !ok {
		return nil, false
	}
	return append([]int64(nil), got...), true
}

// Float64HistogramSamples returns every sample recorded against the handle
// with exactly the given label values. No ordering is guaranteed. ok is false
// if nothing was recorded.
func (p *Plugin) Float64HistogramSamples(handle telemetry.Float64HistogramHandle, labels, optionalLabels []string) (samples []float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	got, ok := p.float64Histograms[keyFor(handle.Index(), labels, optionalLabels)]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), got...), true
}
