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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompress(t *testing.T) {
	data := []byte(strings.Repeat(`{"code":200,"message":"ok"}`, 20))

	gz, err := Gzip(data)
	assert.Nil(t, err)
	plain, err := Gunzip(gz)
	assert.Nil(t, err)
	assert.Equal(t, data, plain)

	br, err := Brotli(data)
	assert.Nil(t, err)
	plain, err = UnBrotli(br)
	assert.Nil(t, err)
	assert.Equal(t, data, plain)

	_, err = Gunzip([]byte("not gzip"))
	assert.NotNil(t, err)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "1", ToString(1))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "18446744073709551615", ToString(uint64(18446744073709551615)))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "a b", ToString("a b"))
	assert.Equal(t, "1s", ToString(time.Second))
	assert.Equal(t, `[1,2]`, ToString([]int{1, 2}))
}

func TestGenerateId(t *testing.T) {
	id := GenerateId("req")
	assert.True(t, strings.HasPrefix(id, "req-"))
	assert.Len(t, id, len("req-")+16)
	assert.NotEqual(t, id, GenerateId("req"))
	assert.Len(t, UUID(), 32)
}
