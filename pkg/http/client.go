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
	"fmt"
	"net/http"
	"time"

	"github.com/caiflower/luca-http/global/env"
	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
	"github.com/caiflower/luca-http/pkg/host"
	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/tools"
	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
)

type Option func(*Client)

func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

func WithTokenStore(tokens TokenStore) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

func WithNotifier(notifier host.Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

func WithNavigator(navigator host.Navigator) Option {
	return func(c *Client) {
		c.navigator = navigator
	}
}

func WithLogger(log logger.ILog) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithMetric(metric *Metric) Option {
	return func(c *Client) {
		c.metric = metric
	}
}

// Client 并发安全, 除配置外只持有宿主能力、传输层和指标
type Client struct {
	config     Config
	baseURL    string
	verbose    bool
	transport  Transport
	tokens     TokenStore
	notifier   host.Notifier
	navigator  host.Navigator
	classifier *Classifier
	executor   *effectExecutor
	metric     *Metric
	log        logger.ILog
}

// result 一次调用的最终结果, err为nil表示成功
type result struct {
	response *RawResponse
	err      *ApiError
	effects  []Effect
}

func NewClient(config Config, opts ...Option) *Client {
	// 初始化默认配置
	_ = tools.DoTagFunc(&config, []tools.FnObj{{Fn: tools.SetDefaultValueIfNil}})

	c := &Client{
		config:  config,
		verbose: *config.Verbose,
		log:     logger.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	platform := config.Platform
	if platform == "" {
		platform = env.Platform
	}
	if platform == PlatformH5 {
		c.baseURL = config.H5BaseURL
	} else {
		c.baseURL = config.WeappBaseURL
	}

	if c.transport == nil {
		transport := NewHttpTransport(config.Transport)
		transport.AddHook(RequestIDHook{})
		c.transport = transport
	}
	if c.notifier == nil {
		c.notifier = host.NewLogNotifier(c.log)
	}
	if c.navigator == nil {
		c.navigator = host.NewLogNavigator(c.log)
	}
	c.classifier = NewClassifier(config.LoginPath, config.RelaunchDelay)
	c.executor = newEffectExecutor(c.notifier, c.navigator, c.tokens, c.log)

	c.log.Info("HttpClient config: %v", tools.ToJson(config))
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request 执行请求。失败时同时返回IsSuccess=false的响应和*ApiError
func (c *Client) Request(ctx context.Context, config RequestConfig) (*RawResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if golocalv1.GetTraceID() == "" {
		defer golocalv1.ScopeTraceID(tools.GenerateId("req"))()
	}

	config = config.withDefaults(c.config)

	start := time.Now()
	res := c.do(ctx, config)
	c.metric.saveMetric(res.response.Code, config.Method, metricPath(config.Path), time.Since(start).Milliseconds())

	c.executor.execute(res.effects, *config.ShowError)
	if res.err == nil {
		return res.response, nil
	}

	if config.CustomErrorHandler != nil && res.err.Kind != FailureMalformed {
		var handlerErr error = res.err
		if res.err.Kind == FailureTransport && res.err.Cause != nil {
			handlerErr = res.err.Cause
		}
		config.CustomErrorHandler(handlerErr)
	}
	return res.response, res.err
}

// do 重试循环。attempts只在本次调用内有效, 不写回config
func (c *Client) do(ctx context.Context, config RequestConfig) *result {
	var (
		attempts int
		res      *result
	)

	operation := retryOperation(func() *TransportError {
		attempts++
		var te *TransportError
		res, te = c.attempt(ctx, config)
		return te
	})
	notify := func(err error, wait time.Duration) {
		c.log.Warn("%s %s failed: %s, retry %d/%d after %v", config.Method, config.Path, err.Error(), attempts, config.Retry, wait)
		c.metric.saveRetry(config.Method, metricPath(config.Path))
	}

	if err := backoff.RetryNotify(operation, newRetryBackOff(ctx, config), notify); err != nil {
		return c.transportFailure(NewTransportError(err))
	}
	return res
}

// attempt 完整执行一次请求拦截、传输与响应拦截。返回*TransportError表示没有拿到响应
func (c *Client) attempt(ctx context.Context, config RequestConfig) (*result, *TransportError) {
	if config.ShowLoading {
		c.notifier.StartLoading(config.LoadingText)
		defer c.notifier.StopLoading()
	}

	request, te := c.beforeRequest(config)
	if te != nil {
		c.log.Error("build request failed. Error: %s", te.Err)
		return nil, te
	}

	if c.verbose {
		c.log.Info("%s URL=%s Header=%s Request=%s", request.Method, request.URL, tools.ToJson(maskHeader(request.Header)), request.Body)
	}

	start := time.Now()
	response, err := c.transport.Do(ctx, request)
	if c.verbose {
		c.log.Info("%s, Elapsed: %v", request.URL, time.Since(start))
	}
	if err != nil {
		te = NewTransportError(err)
		c.log.Error("http request failed. Error: %s", te.Error())
		return nil, te
	}

	return c.afterResponse(config, response), nil
}

// beforeRequest 请求拦截: 注入token, 序列化查询参数, 编码请求体
func (c *Client) beforeRequest(config RequestConfig) (*TransportRequest, *TransportError) {
	header := make(map[string]string, len(config.Header)+1)
	for k, v := range config.Header {
		header[k] = v
	}

	// 调用方显式设置的Authorization优先
	if *config.NeedToken && !hasHeader(header, HeaderAuthorization) {
		if token := c.token(); token != "" {
			header[HeaderAuthorization] = "Bearer " + token
		}
	}

	body, err := encodeBody(config.Data)
	if err != nil {
		return nil, &TransportError{Kind: KindInvalidRequest, ErrMsg: "request:fail invalid data", Err: fmt.Errorf("%w: %s", MarshalErr, err.Error())}
	}

	path := buildPath(config.Path, config.Method, config.Params, time.Now())
	return &TransportRequest{
		URL:          resolveURL(c.baseURL, path),
		Method:       config.Method,
		Body:         body,
		Header:       header,
		Timeout:      config.Timeout,
		DataType:     config.DataType,
		ResponseType: config.ResponseType,
	}, nil
}

// afterResponse 响应拦截: 区分HTTP状态错误、报文异常、业务错误与成功
func (c *Client) afterResponse(config RequestConfig, response *TransportResponse) *result {
	if response.StatusCode != http.StatusOK {
		cls := c.classifier.ClassifyTransportOrHTTP(HTTPErrorInfo{StatusCode: response.StatusCode, Data: response.Body})
		return newFailure(FailureHTTPStatus, cls, nil)
	}

	if config.DataType != DataTypeJson || config.ResponseType != ResponseTypeText || !tools.IsJsonObject(response.Body) {
		return newFailure(FailureMalformed, c.classifier.ClassifyMalformed(), nil)
	}

	var body struct {
		Code    *int                `json:"code"`
		Message *string             `json:"message"`
		Data    jsoniter.RawMessage `json:"data"`
	}
	if err := tools.Unmarshal(response.Body, &body); err != nil {
		c.log.Error("unmarshal response failed. Error: %s", err.Error())
		return newFailure(FailureMalformed, c.classifier.ClassifyMalformed(), err)
	}

	if body.Code != nil && *body.Code != CodeOK {
		message := MsgRequestFailed
		if body.Message != nil && *body.Message != "" {
			message = *body.Message
		}
		return newFailure(FailureBusiness, c.classifier.ClassifyBusiness(*body.Code, message), nil)
	}

	res := &RawResponse{IsSuccess: true, Data: body.Data, Message: MsgSuccess, Code: CodeOK}
	if body.Message != nil {
		res.Message = *body.Message
	}
	return &result{response: res}
}

func (c *Client) transportFailure(te *TransportError) *result {
	cls := c.classifier.ClassifyTransportOrHTTP(HTTPErrorInfo{
		StatusCode: te.StatusCode,
		Data:       te.Body,
		Kind:       te.Kind,
		ErrMsg:     te.ErrMsg,
	})

	kind := FailureTransport
	if te.StatusCode > 0 {
		kind = FailureHTTPStatus
	}
	return newFailure(kind, cls, te)
}

// token 读取失败按未登录处理
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token()
	if err != nil {
		c.log.Error("get token failed. Error: %s", err.Error())
		return ""
	}
	return token
}

// Close 取消尚未执行的登录页跳转并释放空闲连接
func (c *Client) Close() {
	c.executor.close()
	if closer, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

func newFailure(kind FailureKind, cls Classification, cause error) *result {
	response := cls.Response
	return &result{
		response: &response,
		err:      &ApiError{Kind: kind, Code: response.Code, Message: response.Message, Cause: cause},
		effects:  cls.Effects,
	}
}

func encodeBody(data interface{}) ([]byte, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return tools.Marshal(v)
	}
}

func maskHeader(header map[string]string) map[string]string {
	masked := make(map[string]string, len(header))
	for k, v := range header {
		masked[k] = v
	}
	if hasHeader(masked, HeaderAuthorization) {
		setHeader(masked, HeaderAuthorization, "******")
	}
	return masked
}
