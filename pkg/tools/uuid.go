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
	"strings"

	"github.com/google/uuid"
)

// UUID 去掉'-'的uuid
func UUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateId 生成带前缀的短id, 如 req-1a2b3c4d5e6f7a8b
func GenerateId(prefix string) string {
	u := UUID()
	if prefix == "" {
		return u[:16]
	}
	return prefix + "-" + u[:16]
}
