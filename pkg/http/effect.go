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
	"sync"
	"time"

	"github.com/caiflower/luca-http/pkg/host"
	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/safego"
)

// TokenStore 令牌读取与清除, 由pkg/storage.TokenStore实现
type TokenStore interface {
	Token() (string, error)
	RemoveToken() error
}

type effectExecutor struct {
	notifier  host.Notifier
	navigator host.Navigator
	tokens    TokenStore
	log       logger.ILog

	lock   sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

func newEffectExecutor(notifier host.Notifier, navigator host.Navigator, tokens TokenStore, log logger.ILog) *effectExecutor {
	return &effectExecutor{
		notifier:  notifier,
		navigator: navigator,
		tokens:    tokens,
		log:       log,
		timers:    make(map[*time.Timer]struct{}),
	}
}

// execute showError=false 只屏蔽提示, 清除令牌与跳转登录页照常执行
func (x *effectExecutor) execute(effects []Effect, showError bool) {
	for _, effect := range effects {
		switch effect.Type {
		case EffectShowError:
			if showError && x.notifier != nil {
				x.notifier.ShowError(effect.Message)
			}
		case EffectClearToken:
			if x.tokens == nil {
				continue
			}
			if err := x.tokens.RemoveToken(); err != nil {
				x.log.Error("remove token failed. Error: %s", err.Error())
			}
		case EffectRelaunch:
			x.relaunch(effect.Path, effect.Delay)
		}
	}
}

func (x *effectExecutor) relaunch(path string, delay time.Duration) {
	if x.navigator == nil {
		return
	}

	x.lock.Lock()
	defer x.lock.Unlock()
	if x.closed {
		return
	}

	var timer *time.Timer
	timer = safego.AfterFunc(delay, func() {
		x.lock.Lock()
		delete(x.timers, timer)
		x.lock.Unlock()

		if err := x.navigator.ReLaunch(path, nil); err != nil {
			x.log.Error("relaunch to %s failed. Error: %s", path, err.Error())
		}
	})
	x.timers[timer] = struct{}{}
}

// close 取消尚未触发的跳转
func (x *effectExecutor) close() {
	x.lock.Lock()
	defer x.lock.Unlock()

	x.closed = true
	for timer := range x.timers {
		timer.Stop()
	}
	x.timers = make(map[*time.Timer]struct{})
}
