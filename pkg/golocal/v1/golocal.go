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

package v1

import (
	"sync"

	"github.com/modern-go/gls"
)

// RequestID 既是goroutine本地存储中的key，也是透传给服务端的header名
const RequestID = "X-Request-ID"

var localMap sync.Map

func getGoID() int64 {
	return gls.GoID()
}

func getMapByGoID(goID int64) *sync.Map {
	value, _ := localMap.Load(goID)
	if value == nil {
		_tmp := &sync.Map{}
		localMap.Store(goID, _tmp)
		return _tmp
	}
	return value.(*sync.Map)
}

func PutTraceID(value string) {
	getMapByGoID(getGoID()).Store(RequestID, value)
}

func GetTraceID() string {
	if v, ok := getMapByGoID(getGoID()).Load(RequestID); ok {
		return v.(string)
	}
	return ""
}

func Put(key string, value interface{}) {
	getMapByGoID(getGoID()).Store(key, value)
}

func Get(key string) interface{} {
	v, _ := getMapByGoID(getGoID()).Load(key)
	return v
}

// Clean 释放当前goroutine的本地存储
func Clean() {
	localMap.Delete(getGoID())
}

// ScopeTraceID 在当前goroutine上设置traceID，返回的函数恢复之前的状态。
// 当前goroutine原本没有本地存储时，恢复即释放。
func ScopeTraceID(traceID string) (restore func()) {
	goID := getGoID()
	_, existed := localMap.Load(goID)
	previous := GetTraceID()
	PutTraceID(traceID)

	return func() {
		if !existed {
			localMap.Delete(goID)
			return
		}
		if previous == "" {
			getMapByGoID(goID).Delete(RequestID)
		} else {
			getMapByGoID(goID).Store(RequestID, previous)
		}
	}
}
