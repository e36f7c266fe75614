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
	"context"

	"github.com/caiflower/luca-http/pkg/tools"
)

func (c *Client) Get(ctx context.Context, path string, params map[string]interface{}, config *RequestConfig) (*RawResponse, error) {
	return c.Request(ctx, withParams(path, MethodGet, params, config))
}

func (c *Client) Post(ctx context.Context, path string, data interface{}, config *RequestConfig) (*RawResponse, error) {
	return c.Request(ctx, withData(path, MethodPost, data, config))
}

func (c *Client) Put(ctx context.Context, path string, data interface{}, config *RequestConfig) (*RawResponse, error) {
	return c.Request(ctx, withData(path, MethodPut, data, config))
}

func (c *Client) Delete(ctx context.Context, path string, params map[string]interface{}, config *RequestConfig) (*RawResponse, error) {
	return c.Request(ctx, withParams(path, MethodDelete, params, config))
}

// withParams path与method以快捷方法为准, config未设置Params时才使用params
func withParams(path string, method Method, params map[string]interface{}, config *RequestConfig) RequestConfig {
	var c RequestConfig
	if config != nil {
		c = *config
	}
	c.Path = path
	c.Method = method
	if c.Params == nil {
		c.Params = params
	}
	return c
}

func withData(path string, method Method, data interface{}, config *RequestConfig) RequestConfig {
	var c RequestConfig
	if config != nil {
		c = *config
	}
	c.Path = path
	c.Method = method
	if c.Data == nil {
		c.Data = data
	}
	return c
}

// Decode 将原始data解码为T。data无法解码时按报文异常返回
func Decode[T any](resp *RawResponse, err error) (*ApiResponse[T], error) {
	if resp == nil {
		return nil, err
	}

	out := &ApiResponse[T]{IsSuccess: resp.IsSuccess, Message: resp.Message, Code: resp.Code}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return out, err
	}

	if decodeErr := tools.Unmarshal(resp.Data, &out.Data); decodeErr != nil {
		if err != nil {
			return out, err
		}
		return &ApiResponse[T]{IsSuccess: false, Message: MsgMalformed, Code: CodeMalformed},
			&ApiError{Kind: FailureMalformed, Code: CodeMalformed, Message: MsgMalformed, Cause: decodeErr}
	}
	return out, err
}
