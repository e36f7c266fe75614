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

// LoadConfig 读取yaml配置文件，并按default tag填充未配置的字段
func LoadConfig(filename string, v interface{}) error {
	if err := UnmarshalFileYaml(filename, v); err != nil {
		return err
	}

	return DoTagFunc(v, []FnObj{{Fn: SetDefaultValueIfNil}})
}

// LoadConfigContent 与LoadConfig相同，配置内容直接传入
func LoadConfigContent(content []byte, v interface{}) error {
	if err := UnmarshalYaml(content, v); err != nil {
		return err
	}

	return DoTagFunc(v, []FnObj{{Fn: SetDefaultValueIfNil}})
}
