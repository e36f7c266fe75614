/*
 * Copyright 2024 caiflower Authors
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
 */

package safego

import (
	"time"

	"github.com/caiflower/luca-http/pkg/e"
	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
)

// Go 启动goroutine，透传traceID并recover住panic
func Go(fn func()) {
	traceID := golocalv1.GetTraceID()
	go func() {
		defer e.OnError("safeGo")
		if traceID != "" {
			defer golocalv1.ScopeTraceID(traceID)()
		}

		fn()
	}()
}

// AfterFunc 与time.AfterFunc相同，额外透传traceID并recover住panic
func AfterFunc(d time.Duration, fn func()) *time.Timer {
	traceID := golocalv1.GetTraceID()
	return time.AfterFunc(d, func() {
		defer e.OnError("safeGo.AfterFunc")
		if traceID != "" {
			defer golocalv1.ScopeTraceID(traceID)()
		}

		fn()
	})
}
