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

package tools

import (
	"net/url"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EncodeURIComponent 与浏览器encodeURIComponent一致, 空格编码为%20
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	// QueryEscape会转义这些encodeURIComponent保留的字符
	for _, c := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(c), c)
	}
	return escaped
}

// BuildQuery 按key排序拼接查询串, 不含前导'?'
func BuildQuery(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}

	keys := maps.Keys(params)
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, EncodeURIComponent(k)+"="+EncodeURIComponent(ToString(params[k])))
	}
	return strings.Join(pairs, "&")
}

// AppendQuery 将params追加到path之后, path已带查询串时使用'&'连接
func AppendQuery(path string, params map[string]interface{}) string {
	query := BuildQuery(params)
	if query == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + query
	}
	return path + "?" + query
}
