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

import "testing"

func TestMetricSet(t *testing.T) {
	base := NewMetricSet("a", "b")
	if !base.Contains("a") || !base.Contains("b") || base.Contains("c") {
		t.Errorf("NewMetricSet membership wrong: %v", base.Metrics())
	}

	added := base.Add("c")
	if !added.Contains("c") {
		t.Error("Add did not include new metric")
	}
	if base.Contains("c") {
		t.Error("Add mutated the receiver")
	}

	removed := added.Remove("a")
	if removed.Contains("a") {
		t.Error("Remove did not drop metric")
	}
	if !added.Contains("a") {
		t.Error("Remove mutated the receiver")
	}
}

func TestMetricSetNil(t *testing.T) {
	var m *MetricSet
	if m.Contains("a") {
		t.Error("nil set reports membership")
	}
	if got := m.Metrics(); got != nil {
		t.Errorf("nil set Metrics() = %v, want nil", got)
	}
	if added := m.Add("a"); !added.Contains("a") {
		t.Error("Add on nil set did not include metric")
	}
}
