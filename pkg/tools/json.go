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

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func ToJson(v interface{}) string {
	bytes, _ := Marshal(v)
	return string(bytes)
}

// ToByte string与[]byte原样返回，其他类型按json编码
func ToByte(v interface{}) (bytes []byte, err error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	case jsoniter.RawMessage:
		return t, nil
	}

	return Marshal(v)
}

func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func Unmarshal(bytes []byte, v interface{}) error {
	return json.Unmarshal(bytes, v)
}

// IsJsonObject 判断报文是否为json对象
func IsJsonObject(bytes []byte) bool {
	if len(bytes) == 0 {
		return false
	}
	return jsoniter.Get(bytes).ValueType() == jsoniter.ObjectValue
}

// JsonString 读取json对象中的字符串字段，不存在或不是字符串时返回false
func JsonString(bytes []byte, path ...interface{}) (string, bool) {
	val := jsoniter.Get(bytes, path...)
	if val.LastError() != nil || val.ValueType() != jsoniter.StringValue {
		return "", false
	}
	return val.ToString(), true
}
