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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
	"github.com/caiflower/luca-http/pkg/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordHook struct {
	before, after int
	lastErr       error
}

func (h *recordHook) BeforeRequest(ctx context.Context, request *http.Request) (context.Context, error) {
	h.before++
	return ctx, errors.New("ignored")
}

func (h *recordHook) AfterRequest(_ context.Context, _ *http.Request, _ *http.Response, err error) error {
	h.after++
	h.lastErr = err
	return nil
}

func TestHttpTransportDo(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Echo", r.Header.Get("X-App"))
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer server.Close()

	transport := NewHttpTransport(TransportConfig{})
	defer transport.CloseIdleConnections()
	hook := &recordHook{}
	transport.AddHook(RequestIDHook{})
	transport.AddHook(hook)

	defer golocalv1.ScopeTraceID("trace-1")()
	resp, err := transport.Do(context.Background(), &TransportRequest{
		URL:     server.URL + "/items?page=1",
		Method:  MethodPost,
		Body:    []byte(`{"name":"tea"}`),
		Header:  map[string]string{"X-App": "luca", HeaderContentType: ContentTypeJson},
		Timeout: time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `{"code":200}`, string(resp.Body))
	assert.Equal(t, "luca", resp.Header.Get("X-Echo"))

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/items", got.URL.Path)
	assert.Equal(t, "1", got.URL.Query().Get("page"))
	assert.Equal(t, `{"name":"tea"}`, string(gotBody))
	assert.Equal(t, "trace-1", got.Header.Get(golocalv1.RequestID))
	assert.Equal(t, "gzip, br", got.Header.Get("Accept-Encoding"))

	assert.Equal(t, 1, hook.before)
	assert.Equal(t, 1, hook.after)
	assert.NoError(t, hook.lastErr)
}

func TestHttpTransportRequestIDWithoutTrace(t *testing.T) {
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(golocalv1.RequestID)
	}))
	defer server.Close()

	transport := NewHttpTransport(TransportConfig{})
	transport.AddHook(RequestIDHook{})

	_, err := transport.Do(context.Background(), &TransportRequest{URL: server.URL, Method: MethodGet})
	require.NoError(t, err)
	assert.Len(t, requestID, 32)

	_, err = transport.Do(context.Background(), &TransportRequest{URL: server.URL, Method: MethodGet, Header: map[string]string{golocalv1.RequestID: "given"}})
	require.NoError(t, err)
	assert.Equal(t, "given", requestID)
}

func TestHttpTransportDecompress(t *testing.T) {
	payload := []byte(`{"code":200,"data":"compressed"}`)
	gzipped, err := tools.Gzip(payload)
	require.NoError(t, err)
	brotlied, err := tools.Brotli(payload)
	require.NoError(t, err)

	tests := []struct {
		encoding string
		body     []byte
	}{
		{encoding: "gzip", body: gzipped},
		{encoding: "br", body: brotlied},
		{encoding: "", body: payload},
	}

	for _, tt := range tests {
		t.Run("encoding "+tt.encoding, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(tt.body)
			}))
			defer server.Close()

			resp, err := NewHttpTransport(TransportConfig{}).Do(context.Background(), &TransportRequest{URL: server.URL, Method: MethodGet})
			require.NoError(t, err)
			assert.Equal(t, payload, resp.Body)
		})
	}
}

func TestHttpTransportBadEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write([]byte("plain text"))
	}))
	defer server.Close()

	_, err := NewHttpTransport(TransportConfig{}).Do(context.Background(), &TransportRequest{URL: server.URL, Method: MethodGet})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, errors.Is(err, UnGzipErr))
	assert.False(t, te.Transient())
}

func TestHttpTransportErrors(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		request *TransportRequest
		kind    ErrorKind
	}{
		{name: "timeout", ctx: context.Background(), request: &TransportRequest{URL: slow.URL, Method: MethodGet, Timeout: 50 * time.Millisecond}, kind: KindTimeout},
		{name: "connection refused", ctx: context.Background(), request: &TransportRequest{URL: closedURL, Method: MethodGet, Timeout: time.Second}, kind: KindNetwork},
		{name: "canceled", ctx: canceled, request: &TransportRequest{URL: slow.URL, Method: MethodGet}, kind: KindCanceled},
		{name: "invalid url", ctx: context.Background(), request: &TransportRequest{URL: "http://[::1", Method: MethodGet}, kind: KindInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := &recordHook{}
			transport := NewHttpTransport(TransportConfig{})
			transport.AddHook(hook)

			_, err := transport.Do(tt.ctx, tt.request)
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.kind, te.Kind)
		})
	}
}

func TestClientWithHttpTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user":
			assert.Equal(t, "Bearer abc", r.Header.Get(HeaderAuthorization))
			assert.NotEmpty(t, r.URL.Query().Get("_t"))
			_, _ = w.Write([]byte(`{"code":200,"data":{"name":"luca"}}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	tokens := &countingTokens{token: "abc"}
	client := NewClient(Config{Platform: PlatformH5, H5BaseURL: server.URL + "/api"}, WithTokenStore(tokens))
	defer client.Close()

	resp, err := client.Get(context.Background(), "/user", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"luca"}`, string(resp.Data))

	resp, err = client.Get(context.Background(), "/down", nil, &RequestConfig{ShowError: tools.BoolPtr(false)})
	require.Error(t, err)
	assert.Equal(t, 503, resp.Code)
	assert.Equal(t, "service unavailable", resp.Message)
}
