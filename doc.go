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

// Package telemetry is the metrics instrumentation core of the MeshRPC
// stack.
//
// Components declare named instruments once on an InstrumentRegistry and get
// back kind-typed handles that are cheap enough to use on every RPC. At
// measurement time, the recording path resolves the set of stats plugins
// interested in the current channel from a PluginRegistry and fans the
// measurement out to all of them:
//
//	group := plugins.GetStatsPluginsForChannel(telemetry.ChannelScope{Target: target})
//	group.AddInt64Counter(callsStarted, 1, labelValues, optionalLabelValues)
//
// A plugin scopes itself to channels by domain: the default policy matches a
// channel whose target ends with the plugin's configured domain at
// dot-separated label boundaries. Multiple plugins may match the same channel
// and observe the same measurements independently.
//
// Export backends plug in as StatsPlugin implementations; see the otelplugin
// package for an OpenTelemetry-backed sink and the statstest package for an
// in-memory sink usable in tests.
package telemetry
