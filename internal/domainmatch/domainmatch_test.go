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

package domainmatch

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		domain string
		target string
		want   bool
	}{
		{domain: "domain3.domain4", target: "domain3.domain4", want: true},
		{domain: "domain3.domain4", target: "domain2.domain3.domain4", want: true},
		{domain: "domain3.domain4", target: "domain1.domain2.domain3.domain4", want: true},
		// Raw string suffix but not a label-boundary suffix.
		{domain: "domain3.domain4", target: "xdomain3.domain4", want: false},
		{domain: "domain4", target: "sub.xdomain4", want: false},
		// Domain longer than target.
		{domain: "domain2.domain3.domain4", target: "domain3.domain4", want: false},
		// Same length, different labels.
		{domain: "domain3.domain4", target: "domain3.domain5", want: false},
		// Partial overlap of the first matched label.
		{domain: "domain3.domain4", target: "main3.domain4", want: false},
		// Empty domain matches everything.
		{domain: "", target: "domain3.domain4", want: true},
		{domain: "", target: "", want: true},
		// Empty target only matches the empty domain.
		{domain: "domain4", target: "", want: false},
		// Single-label domains.
		{domain: "domain4", target: "domain4", want: true},
		{domain: "domain4", target: "domain3.domain4", want: true},
	}
	for _, tt := range tests {
		if got := Matches(tt.domain, tt.target); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.domain, tt.target, got, tt.want)
		}
	}
}
