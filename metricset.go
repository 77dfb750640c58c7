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

// MetricSet is an immutable set of instrument names. Plugins use it to opt
// in to instruments that are not on by default.
type MetricSet struct {
	metrics map[string]bool
}

// NewMetricSet returns a metric set containing metrics.
func NewMetricSet(metrics ...string) *MetricSet {
	newMetrics := make(map[string]bool)
	for _, metric := range metrics {
		newMetrics[metric] = true
	}
	return &MetricSet{metrics: newMetrics}
}

// Metrics returns the names in the set.
func (m *MetricSet) Metrics() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.metrics))
	for metric := range m.metrics {
		names = append(names, metric)
	}
	return names
}

// Add returns a copy of the set with metrics added.
func (m *MetricSet) Add(metrics ...string) *MetricSet {
	newMetrics := make(map[string]bool)
	if m != nil {
		for metric := range m.metrics {
			newMetrics[metric] = true
		}
	}
	for _, metric := range metrics {
		newMetrics[metric] = true
	}
	return &MetricSet{metrics: newMetrics}
}

// Remove returns a copy of the set with metrics removed.
func (m *MetricSet) Remove(metrics ...string) *MetricSet {
	newMetrics := make(map[string]bool)
	if m != nil {
		for metric := range m.metrics {
			newMetrics[metric] = true
		}
	}
	for _, metric := range metrics {
		delete(newMetrics, metric)
	}
	return &MetricSet{metrics: newMetrics}
}

// Contains reports whether metric is in the set. A nil set contains nothing.
func (m *MetricSet) Contains(metric string) bool {
	return m != nil && m.metrics[metric]
}
