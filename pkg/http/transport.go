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
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/tools"
)

type TransportRequest struct {
	URL          string
	Method       Method
	Body         []byte
	Header       map[string]string
	Timeout      time.Duration
	DataType     DataType
	ResponseType ResponseType
}

type TransportResponse struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport 执行一次往返。失败时返回*TransportError
type Transport interface {
	Do(ctx context.Context, request *TransportRequest) (*TransportResponse, error)
}

// HttpTransport 基于net/http的Transport实现
type HttpTransport struct {
	client      *http.Client
	transport   *http.Transport
	disablePool bool
	hooks       []Hook
	log         logger.ILog
}

func NewHttpTransport(config TransportConfig) *HttpTransport {
	// 初始化默认配置
	_ = tools.DoTagFunc(&config, []tools.FnObj{{Fn: tools.SetDefaultValueIfNil}})

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.ConnectTimeout,    //建立连接超时时间
			KeepAlive: config.KeepAliveInterval, //存活探测间隔时间
		}).DialContext,
		MaxIdleConns:          int(config.MaxIdleConns),        //最大的空闲连接数
		MaxIdleConnsPerHost:   int(config.MaxIdleConnsPerHost), //单个host的最大空闲连接数
		IdleConnTimeout:       config.IdleConnTimeout,          //连接的最大空闲时间
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,      //执行TLS握手的超时时间
		ExpectContinueTimeout: config.ExpectContinueTimeout,    //写Header与写Body之间，等待服务端报头的超时时间
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,    //响应包头的最大超时时间
	}

	return &HttpTransport{
		// 超时由每次请求的context控制
		client:      &http.Client{Transport: transport},
		transport:   transport,
		disablePool: config.DisablePool,
		log:         logger.DefaultLogger(),
	}
}

// AddHook 需要在发起请求前调用
func (t *HttpTransport) AddHook(hook Hook) {
	t.hooks = append(t.hooks, hook)
}

func (t *HttpTransport) Do(ctx context.Context, request *TransportRequest) (*TransportResponse, error) {
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request.Timeout)
		defer cancel()
	}

	httpRequest, err := t.createHttpRequest(ctx, request)
	if err != nil {
		t.log.Error("new httpRequest failed. Error: %s", err.Error())
		return nil, &TransportError{Kind: KindInvalidRequest, ErrMsg: "request:fail invalid request", Err: fmt.Errorf("%w: %s", NewHttpRequestErr, err.Error())}
	}

	hookCtx := ctx
	var hookErr error
	for _, hook := range t.hooks {
		if hookCtx, hookErr = hook.BeforeRequest(hookCtx, httpRequest); hookErr != nil {
			t.log.Error("exec hook beforeRequest failed. Error: %s", hookErr.Error())
		}
	}

	remoteResponse, err := t.client.Do(httpRequest)

	for _, hook := range t.hooks {
		if hookErr = hook.AfterRequest(hookCtx, httpRequest, remoteResponse, err); hookErr != nil {
			t.log.Error("exec hook afterRequest failed. Error: %s", hookErr.Error())
		}
	}
	if err != nil {
		return nil, NewTransportError(err)
	}

	body, err := t.parseHttpResponse(remoteResponse)
	if err != nil {
		return nil, err
	}

	return &TransportResponse{
		StatusCode: remoteResponse.StatusCode,
		Body:       body,
		Header:     remoteResponse.Header,
	}, nil
}

// CloseIdleConnections 释放连接池中的空闲连接
func (t *HttpTransport) CloseIdleConnections() {
	t.transport.CloseIdleConnections()
}

func (t *HttpTransport) createHttpRequest(ctx context.Context, request *TransportRequest) (*http.Request, error) {
	var reader io.Reader
	if request.Body != nil {
		reader = bytes.NewReader(request.Body)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, string(request.Method), request.URL, reader)
	if err != nil {
		return nil, err
	}

	for k, v := range request.Header {
		httpRequest.Header.Set(k, v)
	}
	httpRequest.Header.Set("Accept-Encoding", "gzip, br")

	if t.disablePool {
		httpRequest.Close = true
	}

	return httpRequest, nil
}

func (t *HttpTransport) parseHttpResponse(remoteResponse *http.Response) ([]byte, error) {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			t.log.Error("close remote response body failed. Error: %s", err.Error())
		}
	}(remoteResponse.Body)

	body, err := io.ReadAll(remoteResponse.Body)
	if err != nil {
		t.log.Error("read remoteResponse body failed. Error: %s", err.Error())
		return nil, NewTransportError(err)
	}

	switch {
	case isGzip(remoteResponse.Header):
		body, err = tools.Gunzip(body)
	case isBr(remoteResponse.Header):
		body, err = tools.UnBrotli(body)
	}
	if err != nil {
		t.log.Error("unzip failed. Error: %s", err.Error())
		return nil, &TransportError{Kind: KindUnknown, ErrMsg: "response decode error", Err: fmt.Errorf("%w: %s", UnGzipErr, err.Error())}
	}

	return body, nil
}

func isGzip(header http.Header) bool {
	return strings.Contains(header.Get("Content-Encoding"), "gzip")
}

func isBr(header http.Header) bool {
	return strings.Contains(header.Get("Content-Encoding"), "br")
}
