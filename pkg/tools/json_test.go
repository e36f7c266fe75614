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
	"testing"

	"github.com/stretchr/testify/assert"
)

type searchRequest struct {
	Query      string   `json:"query,omitempty"`
	PageNumber int32    `json:"page_number,omitempty"`
	Hobby      []string `json:"hobby,omitempty"`
}

func TestUnmarshal(t *testing.T) {
	req := &searchRequest{}
	jsonStr := "{\"query\":\"query\",\"page_number\":1,\"hobby\":[\"hobby1\",\"hobby2\"]}"
	assert.Nil(t, Unmarshal([]byte(jsonStr), req))
	assert.Equal(t, "query", req.Query)
	assert.EqualValues(t, 1, req.PageNumber)
	assert.Equal(t, []string{"hobby1", "hobby2"}, req.Hobby)
}

func TestToByte(t *testing.T) {
	b, err := ToByte("raw")
	assert.Nil(t, err)
	assert.Equal(t, []byte("raw"), b)

	b, err = ToByte(map[string]int{"x": 1})
	assert.Nil(t, err)
	assert.Equal(t, `{"x":1}`, string(b))
}

func TestIsJsonObject(t *testing.T) {
	assert.True(t, IsJsonObject([]byte(`{"code":200}`)))
	assert.True(t, IsJsonObject([]byte(`  {"code":200}`)))
	assert.False(t, IsJsonObject([]byte(`[1,2]`)))
	assert.False(t, IsJsonObject([]byte(`"text"`)))
	assert.False(t, IsJsonObject([]byte(`<html></html>`)))
	assert.False(t, IsJsonObject(nil))
}

func TestJsonString(t *testing.T) {
	body := []byte(`{"code":401,"message":"token expired","data":{"name":"luca"}}`)

	msg, ok := JsonString(body, "message")
	assert.True(t, ok)
	assert.Equal(t, "token expired", msg)

	name, ok := JsonString(body, "data", "name")
	assert.True(t, ok)
	assert.Equal(t, "luca", name)

	_, ok = JsonString(body, "code")
	assert.False(t, ok)

	_, ok = JsonString(body, "missing")
	assert.False(t, ok)

	_, ok = JsonString([]byte("not json"), "message")
	assert.False(t, ok)
}
