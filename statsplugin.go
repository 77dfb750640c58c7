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

package telemetry

import (
	"sync"

	"github.com/meshrpc/telemetry/internal/domainmatch"
	"github.com/meshrpc/telemetry/internal/logging"
)

var logger = logging.Component("telemetry")

// ChannelScope identifies a channel for stats plugin matching purposes.
type ChannelScope struct {
	// Target is the canonical target string of the channel.
	Target string
	// Authority is the authority the channel connects with.
	Authority string
}

// StatsPlugin is a telemetry sink. Each registered plugin independently owns
// whatever aggregation state it chooses; this interface only fixes the
// recording contract and the scope predicate.
//
// Recording methods never fail. A plugin that does not want a measurement
// (e.g. for an instrument it has not enabled) simply does not apply it.
type StatsPlugin interface {
	// AddInt64Counter adds incr to the counter referenced by the handle.
	AddInt64Counter(handle Int64CounterHandle, incr int64, labels, optionalLabels []string)
	// AddFloat64Counter adds incr to the counter referenced by the handle.
	AddFloat64Counter(handle Float64CounterHandle, incr float64, labels, optionalLabels []string)
	// RecordInt64Histogram records one sample on the histogram referenced
	// by the handle.
	RecordInt64Histogram(handle Int64HistogramHandle, sample int64, labels, optionalLabels []string)
	// RecordFloat64Histogram records one sample on the histogram referenced
	// by the handle.
	RecordFloat64Histogram(handle Float64HistogramHandle, sample float64, labels, optionalLabels []string)
	// Matches reports whether this plugin wants to observe measurements
	// for channels identified by scope.
	Matches(scope ChannelScope) bool
}

// DomainMatchesTarget reports whether a plugin configured for domain applies
// to a channel target under the default domain-suffix policy: target's
// dot-separated label sequence must end with domain's full label sequence, at
// label boundaries. An empty domain matches every target. Plugins are free to
// implement other predicates; this is the policy used by the plugins shipped
// with this module.
func DomainMatchesTarget(domain, target string) bool {
	return domainmatch.Matches(domain, target)
}

// PluginRegistry is the list of stats plugins registration has made visible
// to channels. Plugin registration is expected at startup; the per-channel
// lookup on the recording path only takes a read lock.
type PluginRegistry struct {
	instruments *InstrumentRegistry

	mu      sync.RWMutex
	plugins []StatsPlugin
}

// NewPluginRegistry returns an empty plugin registry whose measurements are
// validated against instruments. A process normally creates exactly one,
// alongside its instrument registry.
func NewPluginRegistry(instruments *InstrumentRegistry) *PluginRegistry {
	return &PluginRegistry{instruments: instruments}
}

// Instruments returns the instrument registry this plugin registry validates
// against.
func (r *PluginRegistry) Instruments() *InstrumentRegistry { return r.instruments }

// Register adds plugin to the registry. Plugins are consulted in registration
// order. The registry never mutates a plugin after registration; it only
// reads its predicate and delegates measurements to it.
func (r *PluginRegistry) Register(plugin StatsPlugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, plugin)
}

// Reset removes all registered plugins. It is intended for test isolation
// only.
func (r *PluginRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = nil
}

// GetStatsPluginsForChannel returns the group of plugins whose Matches
// predicate accepts scope, in registration order. The group is a snapshot;
// plugins registered after the call do not join an already returned group.
func (r *PluginRegistry) GetStatsPluginsForChannel(scope ChannelScope) PluginGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []StatsPlugin
	for _, p := range r.plugins {
		if p.Matches(scope) {
			matched = append(matched, p)
		}
	}
	return PluginGroup{instruments: r.instruments, plugins: matched}
}

// PluginGroup is the set of plugins matching one channel scope. It owns no
// state beyond the member list; recording methods fan out to every member
// with identical arguments and never fail.
type PluginGroup struct {
	instruments *InstrumentRegistry
	plugins     []StatsPlugin
}

// Len returns the number of plugins in the group.
func (g PluginGroup) Len() int { return len(g.plugins) }

// AddInt64Counter adds incr to the referenced counter on every plugin in the
// group.
func (g PluginGroup) AddInt64Counter(handle Int64CounterHandle, incr int64, labels, optionalLabels []string) {
	if !g.validateLabels(g.instruments.Int64CounterDescriptor(handle), labels, optionalLabels) {
		return
	}
	for _, p := range g.plugins {
		p.AddInt64Counter(handle, incr, labels, optionalLabels)
	}
}

// AddFloat64Counter adds incr to the referenced counter on every plugin in
// the group.
func (g PluginGroup) AddFloat64Counter(handle Float64CounterHandle, incr float64, labels, optionalLabels []string) {
	if !g.validateLabels(g.instruments.Float64CounterDescriptor(handle), labels, optionalLabels) {
		return
	}
	for _, p := range g.plugins {
		p.AddFloat64Counter(handle, incr, labels, optionalLabels)
	}
}

// RecordInt64Histogram records one sample on the referenced histogram on
// every plugin in the group.
func (g PluginGroup) RecordInt64Histogram(handle Int64HistogramHandle, sample int64, labels, optionalLabels []string) {
	if !g.validateLabels(g.instruments.Int64HistogramDescriptor(handle), labels, optionalLabels) {
		return
	}
	for _, p := range g.plugins {
		p.RecordInt64Histogram(handle, sample, labels, optionalLabels)
	}
}

// RecordFloat64Histogram records one sample on the referenced histogram on
// every plugin in the group.
func (g PluginGroup) RecordFloat64Histogram(handle Float64HistogramHandle, sample float64, labels, optionalLabels []string) {
	if !g.validateLabels(g.instruments.Float64HistogramDescriptor(handle), labels, optionalLabels) {
		return
	}
	for _, p := range g.plugins {
		p.RecordFloat64Histogram(handle, sample, labels, optionalLabels)
	}
}

// validateLabels checks that the supplied label values match the declared
// keys in count. A mismatch is a caller bug; the measurement is dropped with
// a warning rather than failing the RPC being instrumented.
func (g PluginGroup) validateLabels(desc InstrumentDescriptor, labels, optionalLabels []string) bool {
	if len(labels) != len(desc.Labels) || len(optionalLabels) != len(desc.OptionalLabels) {
		logger.Warningf("dropping measurement for instrument %q: got %d label values and %d optional label values, want %d and %d", desc.Name, len(labels), len(optionalLabels), len(desc.Labels), len(desc.OptionalLabels))
		return false
	}
	return true
}
