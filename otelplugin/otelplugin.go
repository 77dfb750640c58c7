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

// Package otelplugin provides a stats plugin that exports measurements
// through the OpenTelemetry metric API.
//
// The plugin materializes every enabled instrument in an InstrumentRegistry
// as the corresponding OpenTelemetry instrument at construction time, and
// forwards each measurement with the instrument's label keys and values
// attached as attributes. Aggregation, bucketing and export are entirely the
// configured MeterProvider's concern.
package otelplugin

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/meshrpc/telemetry"
	"github.com/meshrpc/telemetry/internal/logging"
)

var logger = logging.Component("otelplugin")

// meterName identifies this module as the instrumentation scope of the
// instruments it creates.
const meterName = "github.com/meshrpc/telemetry/otelplugin"

// Options configures a Plugin.
type Options struct {
	// MeterProvider is the provider instruments are created from. If unset,
	// the global OpenTelemetry meter provider is used.
	MeterProvider metric.MeterProvider
	// Domain scopes the plugin to channels whose target matches it under
	// the default domain-suffix policy. An empty domain matches every
	// channel.
	Domain string
	// Metrics opts the plugin in to instruments that are not on by default.
	// Instruments that are neither on by default nor named here are not
	// created and their measurements are discarded.
	Metrics *telemetry.MetricSet
}

// Plugin is a telemetry.StatsPlugin backed by OpenTelemetry instruments.
type Plugin struct {
	domain string

	// Instrument slices are indexed by handle index; a nil entry means the
	// instrument is disabled for this plugin.
	int64Counters     []metric.Int64Counter
	float64Counters   []metric.Float64Counter
	int64Histograms   []metric.Int64Histogram
	float64Histograms []metric.Float64Histogram

	int64CounterDescs     []telemetry.InstrumentDescriptor
	float64CounterDescs   []telemetry.InstrumentDescriptor
	int64HistogramDescs   []telemetry.InstrumentDescriptor
	float64HistogramDescs []telemetry.InstrumentDescriptor
}

// New returns a plugin exporting the instruments registered on instruments
// at the time of the call. Instruments registered later are not picked up;
// construct plugins after instrument registration has settled.
func New(instruments *telemetry.InstrumentRegistry, opts Options) (*Plugin, error) {
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	p := &Plugin{
		domain:                opts.Domain,
		int64CounterDescs:     instruments.Int64CounterDescriptors(),
		float64CounterDescs:   instruments.Float64CounterDescriptors(),
		int64HistogramDescs:   instruments.Int64HistogramDescriptors(),
		float64HistogramDescs: instruments.Float64HistogramDescriptors(),
	}

	enabled := func(desc telemetry.InstrumentDescriptor) bool {
		return desc.Default || opts.Metrics.Contains(desc.Name)
	}

	p.int64Counters = make([]metric.Int64Counter, len(p.int64CounterDescs))
	for i, desc := range p.int64CounterDescs {
		if !enabled(desc) {
			continue
		}
		c, err := meter.Int64Counter(desc.Name, metric.WithDescription(desc.Description), metric.WithUnit(desc.Unit))
		if err != nil {
			return nil, fmt.Errorf("otelplugin: creating counter %q: %w", desc.Name, err)
		}
		p.int64Counters[i] = c
	}
	p.float64Counters = make([]metric.Float64Counter, len(p.float64CounterDescs))
	for i, desc := range p.float64CounterDescs {
		if !enabled(desc) {
			continue
		}
		c, err := meter.Float64Counter(desc.Name, metric.WithDescription(desc.Description), metric.WithUnit(desc.Unit))
		if err != nil {
			return nil, fmt.Errorf("otelplugin: creating counter %q: %w", desc.Name, err)
		}
		p.float64Counters[i] = c
	}
	p.int64Histograms = make([]metric.Int64Histogram, len(p.int64HistogramDescs))
	for i, desc := range p.int64HistogramDescs {
		if !enabled(desc) {
			continue
		}
		h, err := meter.Int64Histogram(desc.Name, metric.WithDescription(desc.Description), metric.WithUnit(desc.Unit))
		if err != nil {
			return nil, fmt.Errorf("otelplugin: creating histogram %q: %w", desc.Name, err)
		}
		p.int64Histograms[i] = h
	}
	p.float64Histograms = make([]metric.Float64Histogram, len(p.float64HistogramDescs))
	for i, desc := range p.float64HistogramDescs {
		if !enabled(desc) {
			continue
		}
		h, err := meter.Float64Histogram(desc.Name, metric.WithDescription(desc.Description), metric.WithUnit(desc.Unit))
		if err != nil {
			return nil, fmt.Errorf("otelplugin: creating histogram %q: %w", desc.Name, err)
		}
		p.float64Histograms[i] = h
	}
	return p, nil
}

// Matches implements telemetry.StatsPlugin using the default domain-suffix
// policy on the scope's target.
func (p *Plugin) Matches(scope telemetry.ChannelScope) bool {
	return telemetry.DomainMatchesTarget(p.domain, scope.Target)
}

// attributes pairs the declared label keys with the supplied values. The
// fan-out layer has already validated counts; this guard only protects
// callers recording on the plugin directly.
func attributes(desc telemetry.InstrumentDescriptor, labels, optionalLabels []string) (attribute.Set, bool) {
	if len(labels) != len(desc.Labels) || len(optionalLabels) != len(desc.OptionalLabels) {
		logger.Warningf("dropping measurement for instrument %q: got %d label values and %d optional label values, want %d and %d", desc.Name, len(labels), len(optionalLabels), len(desc.Labels), len(desc.OptionalLabels))
		return attribute.Set{}, false
	}
	attrs := make([]attribute.KeyValue, 0, len(labels)+len(optionalLabels))
	for i, val := range labels {
		attrs = append(attrs, attribute.String(desc.Labels[i], val))
	}
	for i, val := range optionalLabels {
		attrs = append(attrs, attribute.String(desc.OptionalLabels[i], val))
	}
	return attribute.NewSet(attrs...), true
}

// AddInt64Counter implements telemetry.StatsPlugin.
func (p *Plugin) AddInt64Counter(handle telemetry.Int64CounterHandle, incr int64, labels, optionalLabels []string) {
	c := p.int64Counters[handle.Index()]
	if c == nil {
		return
	}
	set, ok := attributes(p.int64CounterDescs[handle.Index()], labels, optionalLabels)
	if !ok {
		return
	}
	c.Add(context.Background(), incr, metric.WithAttributeSet(set))
}

// AddFloat64Counter implements telemetry.StatsPlugin.
func (p *Plugin) AddFloat64Counter(handle telemetry.Float64CounterHandle, incr float64, labels, optionalLabels []string) {
	c := p.float64Counters[handle.Index()]
	if c == nil {
		return
	}
	set, ok := attributes(p.float64CounterDescs[handle.Index()], labels, optionalLabels)
	if !ok {
		return
	}
	c.Add(context.Background(), incr, metric.WithAttributeSet(set))
}

// RecordInt64Histogram implements telemetry.StatsPlugin.
func (p *Plugin) RecordInt64Histogram(handle telemetry.Int64HistogramHandle, sample int64, labels, optionalLabels []string) {
	h := p.int64Histograms[handle.Index()]
	if h == nil {
		return
	}
	set, ok := attributes(p.int64HistogramDescs[handle.Index()], labels, optionalLabels)
	if !ok {
		return
	}
	h.Record(context.Background(), sample, metric.WithAttributeSet(set))
}

// RecordFloat64Histogram implements telemetry.StatsPlugin.
func (p *Plugin) RecordFloat64Histogram(handle telemetry.Float64HistogramHandle, sample float64, labels, optionalLabels []string) {
	h := p.float64Histograms[handle.Index()]
	if h == nil {
		return
	}
	set, ok := attributes(p.float64HistogramDescs[handle.Index()], labels, optionalLabels)
	if !ok {
		return
	}
	h.Record(context.Background(), sample, metric.WithAttributeSet(set))
}
