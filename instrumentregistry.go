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
	"fmt"
	"sync"
)

// InstrumentDescriptor describes a registered instrument (metric). It is
// immutable once registered; callers must not mutate its label slices after
// passing it to a registration function.
type InstrumentDescriptor struct {
	// Name is the name of this instrument. It must be unique across the
	// registry it is registered on.
	Name string
	// Description is a human readable description of this instrument.
	Description string
	// Unit is the unit of this instrument (e.g. "ms", "call").
	Unit string
	// Labels are the required label keys for this instrument. Recording
	// calls must supply one value per key, in order.
	Labels []string
	// OptionalLabels are the optional label keys for this instrument.
	// Recording calls must supply one value per key, in order.
	OptionalLabels []string
	// Default is whether this instrument is recorded by plugins that have
	// not explicitly opted in to it.
	Default bool
}

// Int64CounterHandle references a registered int64 counter. Handles are only
// created by registration and are cheap to copy and compare.
type Int64CounterHandle struct {
	index int
}

// Index returns the position of the referenced instrument among all int64
// counters, in registration order.
func (h Int64CounterHandle) Index() int { return h.index }

// Float64CounterHandle references a registered float64 counter.
type Float64CounterHandle struct {
	index int
}

// Index returns the position of the referenced instrument among all float64
// counters, in registration order.
func (h Float64CounterHandle) Index() int { return h.index }

// Int64HistogramHandle references a registered int64 histogram.
type Int64HistogramHandle struct {
	index int
}

// Index returns the position of the referenced instrument among all int64
// histograms, in registration order.
func (h Int64HistogramHandle) Index() int { return h.index }

// Float64HistogramHandle references a registered float64 histogram.
type Float64HistogramHandle struct {
	index int
}

// Index returns the position of the referenced instrument among all float64
// histograms, in registration order.
func (h Float64HistogramHandle) Index() int { return h.index }

// InstrumentRegistry is a table of instrument descriptors, keyed by name.
// Components declare their instruments once, typically at initialization
// time, and hold on to the returned handles for recording.
//
// Registration takes a lock and is not a hot-path operation. Descriptor
// lookups by handle are safe from arbitrary goroutines.
type InstrumentRegistry struct {
	mu    sync.RWMutex
	names map[string]bool

	int64Counters     []InstrumentDescriptor
	float64Counters   []InstrumentDescriptor
	int64Histograms   []InstrumentDescriptor
	float64Histograms []InstrumentDescriptor
}

// NewInstrumentRegistry returns an empty instrument registry. A process
// normally creates exactly one and shares it with every component that
// declares or records instruments.
func NewInstrumentRegistry() *InstrumentRegistry {
	return &InstrumentRegistry{names: make(map[string]bool)}
}

// registerName panics if name was already registered, across all instrument
// kinds. Duplicate registration indicates two components claiming the same
// instrument identity, which cannot be recovered from at runtime.
func (r *InstrumentRegistry) registerName(name string) {
	if r.names[name] {
		panic(fmt.Sprintf("telemetry: instrument %q already registered", name))
	}
	r.names[name] = true
}

// RegisterInt64Counter registers an int64 counter instrument and returns a
// handle to record on it. It panics if an instrument with the same name is
// already registered.
func (r *InstrumentRegistry) RegisterInt64Counter(desc InstrumentDescriptor) Int64CounterHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerName(desc.Name)
	r.int64Counters = append(r.int64Counters, desc)
	return Int64CounterHandle{index: len(r.int64Counters) - 1}
}

// RegisterFloat64Counter registers a float64 counter instrument and returns a
// handle to record on it. It panics if an instrument with the same name is
// already registered.
func (r *InstrumentRegistry) RegisterFloat64Counter(desc InstrumentDescriptor) Float64CounterHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerName(desc.Name)
	r.float64Counters = append(r.float64Counters, desc)
	return Float64CounterHandle{index: len(r.float64Counters) - 1}
}

// RegisterInt64Histogram registers an int64 histogram instrument and returns
// a handle to record on it. It panics if an instrument with the same name is
// already registered.
func (r *InstrumentRegistry) RegisterInt64Histogram(desc InstrumentDescriptor) Int64HistogramHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerName(desc.Name)
	r.int64Histograms = append(r.int64Histograms, desc)
	return Int64HistogramHandle{index: len(r.int64Histograms) - 1}
}

// RegisterFloat64Histogram registers a float64 histogram instrument and
// returns a handle to record on it. It panics if an instrument with the same
// name is already registered.
func (r *InstrumentRegistry) RegisterFloat64Histogram(desc InstrumentDescriptor) Float64HistogramHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerName(desc.Name)
	r.float64Histograms = append(r.float64Histograms, desc)
	return Float64HistogramHandle{index: len(r.float64Histograms) - 1}
}

// Int64CounterDescriptor returns the descriptor the handle was registered
// with.
func (r *InstrumentRegistry) Int64CounterDescriptor(h Int64CounterHandle) InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.int64Counters[h.index]
}

// Float64CounterDescriptor returns the descriptor the handle was registered
// with.
func (r *InstrumentRegistry) Float64CounterDescriptor(h Float64CounterHandle) InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.float64Counters[h.index]
}

// Int64HistogramDescriptor returns the descriptor the handle was registered
// with.
func (r *InstrumentRegistry) Int64HistogramDescriptor(h Int64HistogramHandle) InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.int64Histograms[h.index]
}

// Float64HistogramDescriptor returns the descriptor the handle was registered
// with.
func (r *InstrumentRegistry) Float64HistogramDescriptor(h Float64HistogramHandle) InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.float64Histograms[h.index]
}

// Int64CounterDescriptors returns the descriptors of all registered int64
// counters in registration order. The position of each descriptor matches
// the Index of the handle returned for it, which lets a plugin build
// per-instrument state addressed by handle index.
func (r *InstrumentRegistry) Int64CounterDescriptors() []InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]InstrumentDescriptor(nil), r.int64Counters...)
}

// Float64CounterDescriptors returns the descriptors of all registered float64
// counters in registration order.
func (r *InstrumentRegistry) Float64CounterDescriptors() []InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]InstrumentDescriptor(nil), r.float64Counters...)
}

// Int64HistogramDescriptors returns the descriptors of all registered int64
// histograms in registration order.
func (r *InstrumentRegistry) Int64HistogramDescriptors() []InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]InstrumentDescriptor(nil), r.int64Histograms...)
}

// Float64HistogramDescriptors returns the descriptors of all registered
// float64 histograms in registration order.
func (r *InstrumentRegistry) Float64HistogramDescriptors() []InstrumentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]InstrumentDescriptor(nil), r.float64Histograms...)
}

// Reset clears the registry, invalidating all previously returned handles.
// It is intended for test isolation only and must never be called while
// other goroutines record measurements.
func (r *InstrumentRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = make(map[string]bool)
	r.int64Counters = nil
	r.float64Counters = nil
	r.int64Histograms = nil
	r.float64Histograms = nil
}
