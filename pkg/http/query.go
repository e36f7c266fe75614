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

package http

import (
	"strings"
	"time"

	"github.com/caiflower/luca-http/pkg/tools"
)

// cacheBustKey GET请求追加的时间戳参数, 防止宿主缓存
const cacheBustKey = "_t"

// buildPath 拼接查询串。调用方参数按key排序, GET请求的_t固定在最后
func buildPath(path string, method Method, params map[string]interface{}, now time.Time) string {
	if params == nil {
		return path
	}
	if method != MethodGet {
		return tools.AppendQuery(path, params)
	}

	callerParams := params
	if _, ok := params[cacheBustKey]; ok {
		callerParams = make(map[string]interface{}, len(params))
		for k, v := range params {
			if k != cacheBustKey {
				callerParams[k] = v
			}
		}
	}
	path = tools.AppendQuery(path, callerParams)
	return tools.AppendQuery(path, map[string]interface{}{cacheBustKey: now.UnixMilli()})
}

// resolveURL 绝对地址原样使用, 否则拼接平台的基础地址
func resolveURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

// metricPath 去掉查询串, 避免指标label过多
func metricPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
