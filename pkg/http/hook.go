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
	"net/http"

	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
	"github.com/caiflower/luca-http/pkg/tools"
)

// Hook 在每次net/http往返前后执行, 返回的错误只记录日志
type Hook interface {
	BeforeRequest(ctx context.Context, request *http.Request) (context.Context, error)
	AfterRequest(ctx context.Context, request *http.Request, response *http.Response, err error) error
}

// RequestIDHook 为请求设置X-Request-ID, 优先使用当前goroutine的traceID
type RequestIDHook struct{}

func (RequestIDHook) BeforeRequest(ctx context.Context, request *http.Request) (context.Context, error) {
	if request.Header.Get(golocalv1.RequestID) != "" {
		return ctx, nil
	}

	requestID := golocalv1.GetTraceID()
	if requestID == "" {
		requestID = tools.UUID()
	}
	request.Header.Set(golocalv1.RequestID, requestID)
	return ctx, nil
}

func (RequestIDHook) AfterRequest(context.Context, *http.Request, *http.Response, error) error {
	return nil
}
