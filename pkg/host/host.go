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

// Package host 定义宿主运行时(小程序/H5)提供给请求管道的能力：提示、loading与页面跳转。
package host

import (
	"sync"

	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/tools"
)

type Notifier interface {
	StartLoading(msg string)
	StopLoading()
	ShowToast(msg string)
	ShowSuccess(msg string)
	ShowError(msg string)
}

type Navigator interface {
	// ReLaunch 关闭所有页面，打开到应用内的某个页面
	ReLaunch(path string, params map[string]interface{}) error
}

// BuildPageURL 拼接页面路径与查询参数
func BuildPageURL(path string, params map[string]interface{}) string {
	return tools.AppendQuery(path, params)
}

// LogNotifier 无界面环境下把提示输出到日志
type LogNotifier struct {
	log logger.ILog
}

func NewLogNotifier(log logger.ILog) *LogNotifier {
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) StartLoading(msg string) {
	n.log.Debug("[loading] start %s", msg)
}

func (n *LogNotifier) StopLoading() {
	n.log.Debug("[loading] stop")
}

func (n *LogNotifier) ShowToast(msg string) {
	n.log.Info("[toast] %s", msg)
}

func (n *LogNotifier) ShowSuccess(msg string) {
	n.log.Info("[toast success] %s", msg)
}

func (n *LogNotifier) ShowError(msg string) {
	n.log.Warn("[toast error] %s", msg)
}

type LogNavigator struct {
	log logger.ILog
}

func NewLogNavigator(log logger.ILog) *LogNavigator {
	if log == nil {
		log = logger.DefaultLogger()
	}
	return &LogNavigator{log: log}
}

func (n *LogNavigator) ReLaunch(path string, params map[string]interface{}) error {
	n.log.Info("[navigate] reLaunch %s", BuildPageURL(path, params))
	return nil
}

// Recorder 记录所有宿主调用，并发安全
type Recorder struct {
	lock      sync.Mutex
	loading   int
	started   int
	toasts    []string
	successes []string
	errors    []string
	relaunch  []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) StartLoading(string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.loading++
	r.started++
}

func (r *Recorder) StopLoading() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.loading > 0 {
		r.loading--
	}
}

func (r *Recorder) ShowToast(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.toasts = append(r.toasts, msg)
}

func (r *Recorder) ShowSuccess(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) ShowError(msg string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) ReLaunch(path string, params map[string]interface{}) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.relaunch = append(r.relaunch, BuildPageURL(path, params))
	return nil
}

// Loading 当前未关闭的loading数量
func (r *Recorder) Loading() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.loading
}

// LoadingStarted loading累计打开次数
func (r *Recorder) LoadingStarted() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.started
}

func (r *Recorder) Errors() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.errors...)
}

func (r *Recorder) Toasts() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.toasts...)
}

func (r *Recorder) Successes() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Relaunches() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.relaunch...)
}
