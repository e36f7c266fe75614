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

	"github.com/cenkalti/backoff/v4"
)

// newRetryBackOff 固定间隔重试retry次, ctx取消时立即停止等待
func newRetryBackOff(ctx context.Context, config RequestConfig) backoff.BackOff {
	constant := backoff.NewConstantBackOff(config.RetryDelay)
	return backoff.WithContext(backoff.WithMaxRetries(constant, uint64(config.Retry)), ctx)
}

// retryOperation 只有可重试的传输错误交给backoff继续, 其余结果直接结束
func retryOperation(attempt func() *TransportError) backoff.Operation {
	return func() error {
		te := attempt()
		if te == nil {
			return nil
		}
		if !te.Transient() {
			return backoff.Permanent(te)
		}
		return te
	}
}
