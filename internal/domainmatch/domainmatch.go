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

// Package domainmatch implements the default scope policy deciding whether a
// stats plugin's configured domain applies to a channel target.
package domainmatch

import "strings"

// Matches reports whether target's dot-separated label sequence ends with
// domain's full label sequence. The comparison is per label, so a domain only
// matches at a label boundary: target "xdomain3.domain4" does not match
// domain "domain3.domain4", while "domain2.domain3.domain4" does. An empty
// domain matches every target.
func Matches(domain, target string) bool {
	if domain == "" {
		return true
	}
	if len(target) == len(domain) {
		return target == domain
	}
	return strings.HasSuffix(target, "."+domain)
}
