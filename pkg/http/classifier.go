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
	"fmt"
	"net/http"
	"time"

	"github.com/caiflower/luca-http/pkg/tools"
)

const (
	MsgSuccess       = "success"
	MsgRequestFailed = "request failed"
	MsgMalformed     = "malformed server response"
	MsgTimeout       = "request timed out"
	MsgNetworkFailed = "network request failed"
	MsgNetworkCheck  = "network connection failed, check your network"

	CodeTransportFailure = -1
	CodeMalformed        = -1
)

var statusMessages = map[int]string{
	http.StatusBadRequest:              "bad request parameters",
	http.StatusUnauthorized:            "unauthorized, please log in again",
	http.StatusForbidden:               "access denied",
	http.StatusNotFound:                "requested resource not found",
	http.StatusMethodNotAllowed:        "method not allowed",
	http.StatusRequestTimeout:          "request timeout",
	http.StatusInternalServerError:     "internal server error",
	http.StatusNotImplemented:          "service not implemented",
	http.StatusBadGateway:              "bad gateway",
	http.StatusServiceUnavailable:      "service unavailable",
	http.StatusGatewayTimeout:          "gateway timeout",
	http.StatusHTTPVersionNotSupported: "HTTP version not supported",
}

// handler表中消息为空时使用的默认提示
var handlerDefaults = map[int]string{
	http.StatusUnauthorized:        "unauthorized, please log in again",
	http.StatusForbidden:           "no permission to access this resource",
	http.StatusInternalServerError: "server error, please try again later",
}

type EffectType int

const (
	EffectShowError EffectType = iota + 1
	EffectClearToken
	EffectRelaunch
)

func (t EffectType) String() string {
	switch t {
	case EffectShowError:
		return "show_error"
	case EffectClearToken:
		return "clear_token"
	case EffectRelaunch:
		return "relaunch"
	default:
		return "unknown"
	}
}

// Effect 分类结果附带的副作用, 由effectExecutor执行
type Effect struct {
	Type    EffectType
	Message string        // EffectShowError
	Path    string        // EffectRelaunch
	Delay   time.Duration // EffectRelaunch
}

type Classification struct {
	Response RawResponse
	Effects  []Effect
}

// HTTPErrorInfo 分类器的输入。StatusCode<=0 表示没有拿到响应
type HTTPErrorInfo struct {
	StatusCode int
	Data       []byte
	Kind       ErrorKind
	ErrMsg     string
}

// Classifier 无副作用, 只负责把失败信号映射为响应与副作用列表
type Classifier struct {
	LoginPath     string
	RelaunchDelay time.Duration
}

func NewClassifier(loginPath string, relaunchDelay time.Duration) *Classifier {
	return &Classifier{LoginPath: loginPath, RelaunchDelay: relaunchDelay}
}

func (c *Classifier) ClassifyTransportOrHTTP(info HTTPErrorInfo) Classification {
	if info.StatusCode > 0 {
		message := statusMessage(info.StatusCode, info.Data)
		return Classification{
			Response: failure(info.StatusCode, message),
			Effects:  c.codeEffects(info.StatusCode, message),
		}
	}

	te := &TransportError{Kind: info.Kind, ErrMsg: info.ErrMsg}
	var message string
	switch te.effectiveKind() {
	case KindTimeout:
		message = MsgTimeout
	case KindNetwork:
		message = MsgNetworkFailed
	default:
		message = MsgNetworkCheck
	}
	return Classification{
		Response: failure(CodeTransportFailure, message),
		Effects:  []Effect{{Type: EffectShowError, Message: message}},
	}
}

// ClassifyBusiness 业务码非200, message由服务端给出
func (c *Classifier) ClassifyBusiness(code int, message string) Classification {
	return Classification{
		Response: failure(code, message),
		Effects:  c.codeEffects(code, message),
	}
}

func (c *Classifier) ClassifyMalformed() Classification {
	return Classification{
		Response: failure(CodeMalformed, MsgMalformed),
		Effects:  []Effect{{Type: EffectShowError, Message: MsgMalformed}},
	}
}

func (c *Classifier) codeEffects(code int, message string) []Effect {
	if message == "" {
		message = handlerDefaults[code]
	}
	if message == "" {
		message = MsgRequestFailed
	}

	effects := []Effect{{Type: EffectShowError, Message: message}}
	if code == http.StatusUnauthorized {
		effects = append(effects,
			Effect{Type: EffectClearToken},
			Effect{Type: EffectRelaunch, Path: c.LoginPath, Delay: c.RelaunchDelay},
		)
	}
	return effects
}

// statusMessage 优先使用服务端返回的message
func statusMessage(statusCode int, data []byte) string {
	if msg, ok := tools.JsonString(data, "message"); ok && msg != "" {
		return msg
	}
	if msg, ok := statusMessages[statusCode]; ok {
		return msg
	}
	return fmt.Sprintf("%s (%d)", MsgRequestFailed, statusCode)
}

func failure(code int, message string) RawResponse {
	return RawResponse{IsSuccess: false, Data: nil, Message: message, Code: code}
}
