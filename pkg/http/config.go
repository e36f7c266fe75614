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
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	CodeOK = 200

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJson     = "application/json"

	PlatformWeapp = "weapp"
	PlatformH5    = "h5"
)

type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodPatch   Method = http.MethodPatch
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
)

type DataType string

const (
	DataTypeJson DataType = "json"
	DataTypeText DataType = "text"
	DataTypeHtml DataType = "html"
)

type ResponseType string

const (
	ResponseTypeText        ResponseType = "text"
	ResponseTypeArrayBuffer ResponseType = "arraybuffer"
)

// Config 客户端级配置
type Config struct {
	Platform      string          `yaml:"platform"`                                                //weapp/h5, 为空时取环境变量LUCA_ENV
	WeappBaseURL  string          `yaml:"weapp_base_url" default:"https://your-api-domain.com/api"` //小程序环境的接口地址
	H5BaseURL     string          `yaml:"h5_base_url" default:"http://localhost:10086/api"`         //h5开发环境的接口地址
	Timeout       time.Duration   `yaml:"timeout" default:"10s"`                                   //单次请求超时时间
	RetryDelay    time.Duration   `yaml:"retry_delay" default:"1s"`                                //重试间隔
	LoadingText   string          `yaml:"loading_text" default:"loading..."`                       //加载提示文案
	LoginPath     string          `yaml:"login_path" default:"/pages/login/index"`                 //401后跳转的登录页
	RelaunchDelay time.Duration   `yaml:"relaunch_delay" default:"1500ms"`                         //401后延迟跳转时间
	Verbose       *bool           `yaml:"verbose" default:"false"`                                 //是否打印请求日志
	Transport     TransportConfig `yaml:"transport"`
}

type TransportConfig struct {
	MaxIdleConns          uint          `yaml:"max_idle_conns" default:"1000"`        //最大的空闲连接数
	MaxIdleConnsPerHost   uint          `yaml:"max_idle_conns_per_host" default:"30"` //单个host的最大空闲连接数
	ConnectTimeout        time.Duration `yaml:"connect_timeout" default:"30s"`        //建立连接超时时间
	KeepAliveInterval     time.Duration `yaml:"keep_alive_interval" default:"30s"`    //存活探测间隔时间
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout" default:"500s"`     //连接的最大空闲时间
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout" default:"5s"`   //执行TLS握手的超时时间
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout"`              //写Header与写Body之间，等待服务端报头的超时时间
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout"`              //响应包头的最大超时时间
	DisablePool           bool          `yaml:"disable_pool"`                         //只使用短连接
}

// RequestConfig 单次请求的配置, 零值字段使用Client的默认值
type RequestConfig struct {
	Path               string
	Method             Method
	Params             map[string]interface{} // nil表示没有参数
	Data               interface{}            // []byte/string原样发送, 其他按json编码
	Header             map[string]string
	Timeout            time.Duration
	DataType           DataType
	ResponseType       ResponseType
	NeedToken          *bool
	ShowLoading        bool
	ShowError          *bool
	Retry              int
	RetryDelay         time.Duration
	CustomErrorHandler func(error)
	LoadingText        string
}

type ApiResponse[T any] struct {
	IsSuccess bool   `json:"isSuccess"`
	Data      T      `json:"data"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
}

type RawResponse = ApiResponse[jsoniter.RawMessage]

// withDefaults 返回填充默认值后的副本, 不修改调用方的map
func (c RequestConfig) withDefaults(config Config) RequestConfig {
	if c.Method == "" {
		c.Method = MethodGet
	} else {
		c.Method = Method(strings.ToUpper(string(c.Method)))
	}
	if c.Timeout <= 0 {
		c.Timeout = config.Timeout
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = config.RetryDelay
	}
	if c.Retry < 0 {
		c.Retry = 0
	}
	if c.DataType == "" {
		c.DataType = DataTypeJson
	}
	if c.ResponseType == "" {
		c.ResponseType = ResponseTypeText
	}
	if c.NeedToken == nil {
		needToken := true
		c.NeedToken = &needToken
	}
	if c.ShowError == nil {
		showError := true
		c.ShowError = &showError
	}
	if c.LoadingText == "" {
		c.LoadingText = config.LoadingText
	}

	header := map[string]string{HeaderContentType: ContentTypeJson}
	for k, v := range c.Header {
		setHeader(header, k, v)
	}
	c.Header = header

	return c
}

// setHeader header key不区分大小写
func setHeader(header map[string]string, key, value string) {
	for k := range header {
		if strings.EqualFold(k, key) {
			delete(header, k)
		}
	}
	header[key] = value
}

func hasHeader(header map[string]string, key string) bool {
	for k := range header {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
