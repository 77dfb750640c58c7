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

package statstest

import (
	"sync"
	"testing"

	"github.com/meshrpc/telemetry"
)

// TestAbsentIsDistinctFromZero verifies that a recorded sum of zero reports
// ok while a never-recorded cell reports no value.
func TestAbsentIsDistinctFromZero(t *testing.T) {
	instruments := telemetry.NewInstrumentRegistry()
	handle := instruments.RegisterInt64Counter(telemetry.InstrumentDescriptor{
		Name:    "calls_started",
		Labels:  []string{"method"},
		Default: true,
	})
	plugin := New(instruments)

	plugin.AddInt64Counter(handle, 0, []string{"/Service/Method"}, nil)
	if got, ok := plugin.Int64CounterValue(handle, []string{"/Service/Method"}, nil); !ok || got != 0 {
		t.Errorf("Int64CounterValue() = %v, %v, want 0, true", got, ok)
	}
	if got, ok := plugin.Int64CounterValue(handle, []string{"/Other/Method"}, nil); ok {
		t.Errorf("Int64CounterValue() for unrecorded labels = %v, true, want no value", got)
	}
}

// TestLabelValuesPartitionAggregation verifies that measurements with
// different label values aggregate into separate cells.
func TestLabelValuesPartitionAggregation(t *testing.T) {
	instruments := telemetry.NewInstrumentRegistry()
	handle := instruments.RegisterInt64Counter(telemetry.InstrumentDescriptor{
		Name:           "calls_started",
		Labels:         []string{"method"},
		OptionalLabels: []string{"locality"},
		Default:        true,
	})
	plugin := New(instruments)

	plugin.AddInt64Counter(handle, 1, []string{"a"}, []string{"us-east1"})
	plugin.AddInt64Counter(handle, 2, []string{"a"}, []string{"us-east1"})
	plugin.AddInt64Counter(handle, 5, []string{"a"}, []string{"us-west1"})

	if got, ok := plugin.Int64CounterValue(handle, []string{"a"}, []string{"us-east1"}); !ok || got != 3 {
		t.Errorf("Int64CounterValue(us-east1) = %v, %v, want 3, true", got, ok)
	}
	if got, ok := plugin.Int64CounterValue(handle, []string{"a"}, []string{"us-west1"}); !ok || got != 5 {
		t.Errorf("Int64CounterValue(us-west1) = %v, %v, want 5, true", got, ok)
	}
}

// TestConcurrentAdds verifies that concurrent increments are not lost.
func TestConcurrentAdds(t *testing.T) {
	instruments := telemetry.NewInstrumentRegistry()
	handle := instruments.RegisterInt64Counter(telemetry.InstrumentDescriptor{
		Name:    "calls_started",
		Default: true,
	})
	plugin := New(instruments)

	const goroutines = 10
	const addsPerGoroutine = 1000
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerGoroutine; j++ {
				plugin.AddInt64Counter(handle, 1, nil, nil)
			}
		}()
	}
	wg.Wait()

	if got, ok := plugin.Int64CounterValue(handle, nil, nil); !ok || got != goroutines*addsPerGoroutine {
		t.Errorf("Int64CounterValue() = %v, %v, want %v, true", got, ok, goroutines*addsPerGoroutine)
	}
}

// TestMatchesUsesTargetOnly verifies the default policy matches on target
// and ignores authority.
func TestMatchesUsesTargetOnly(t *testing.T) {
	instruments := telemetry.NewInstrumentRegistry()
	plugin := New(instruments, WithDomain("domain3.domain4"))

	if !plugin.Matches(telemetry.ChannelScope{Target: "domain2.domain3.domain4", Authority: "anything"}) {
		t.Error("Matches() = false for matching target, want true")
	}
	if plugin.Matches(telemetry.ChannelScope{Target: "other", Authority: "domain3.domain4"}) {
		t.Error("Matches() = true for authority-only match, want false")
	}
}
