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

// Package logging provides component-scoped loggers for this module, backed
// by glog. Each component's output is prefixed with its name so that log
// lines from different parts of the stack are distinguishable.
package logging

import (
	"fmt"

	"github.com/golang/glog"
)

// Logger emits log lines for a single component.
type Logger struct {
	prefix string
}

// Component returns a logger for the named component. Loggers are cheap and
// typically created once per package in a var block.
func Component(name string) *Logger {
	return &Logger{prefix: "[" + name + "] "}
}

// Infof logs at the info level.
func (l *Logger) Infof(format string, args ...any) {
	glog.InfoDepth(1, l.prefix+fmt.Sprintf(format, args...))
}

// Warningf logs at the warning level.
func (l *Logger) Warningf(format string, args ...any) {
	glog.WarningDepth(1, l.prefix+fmt.Sprintf(format, args...))
}

// Errorf logs at the error level.
func (l *Logger) Errorf(format string, args ...any) {
	glog.ErrorDepth(1, l.prefix+fmt.Sprintf(format, args...))
}
