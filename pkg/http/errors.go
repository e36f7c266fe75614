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
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
)

var (
	MarshalErr        = errors.New("marshal request failed")
	NewHttpRequestErr = errors.New("new httpRequest failed")
	UnGzipErr         = errors.New("ungzip failed")
)

// ErrorKind 传输层错误分类
type ErrorKind int

const (
	KindUnknown        ErrorKind = iota // 未识别，按ErrMsg子串兼容判断
	KindTimeout                         // 超时
	KindNetwork                         // 连接失败、连接中断等网络错误
	KindCanceled                        // 调用方取消
	KindInvalidRequest                  // 请求无法构造，属于调用方错误
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindCanceled:
		return "canceled"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// TransportError 请求没有拿到服务端响应。StatusCode>0 表示宿主同时给出了状态码
type TransportError struct {
	Kind       ErrorKind
	StatusCode int
	Body       []byte
	ErrMsg     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.ErrMsg != "" {
		return e.ErrMsg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request:fail " + e.Kind.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transient 超时与网络错误可以重试。KindUnknown时沿用错误信息包含"timeout"/"fail"的判断
func (e *TransportError) Transient() bool {
	switch e.effectiveKind() {
	case KindTimeout, KindNetwork:
		return true
	default:
		return false
	}
}

func (e *TransportError) effectiveKind() ErrorKind {
	if e.Kind != KindUnknown {
		return e.Kind
	}
	switch {
	case strings.Contains(e.ErrMsg, "timeout"):
		return KindTimeout
	case strings.Contains(e.ErrMsg, "fail"):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// NewTransportError 将net/http返回的错误归类
func NewTransportError(err error) *TransportError {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}

	var netErr net.Error
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Kind: KindTimeout, ErrMsg: "request:fail timeout", Err: err}
	case errors.Is(err, context.Canceled):
		return &TransportError{Kind: KindCanceled, ErrMsg: "request:fail abort", Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{Kind: KindTimeout, ErrMsg: "request:fail timeout", Err: err}
	case errors.As(err, &opErr), errors.As(err, &dnsErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &TransportError{Kind: KindNetwork, ErrMsg: "request:fail " + err.Error(), Err: err}
	default:
		return &TransportError{Kind: KindUnknown, ErrMsg: err.Error(), Err: err}
	}
}

// FailureKind 最终失败的分类
type FailureKind int

const (
	FailureTransport FailureKind = iota + 1
	FailureHTTPStatus
	FailureBusiness
	FailureMalformed
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureHTTPStatus:
		return "http_status"
	case FailureBusiness:
		return "business"
	case FailureMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ApiError 与失败的ApiResponse一同返回
type ApiError struct {
	Kind    FailureKind
	Code    int
	Message string
	Cause   error
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s failure (code %d): %s", e.Kind, e.Code, e.Message)
}

func (e *ApiError) Unwrap() error {
	return e.Cause
}
