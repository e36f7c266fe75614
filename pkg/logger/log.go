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

package logger

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
)

const (
	_trace = iota
	_debug
	_info
	_warn
	_error
	_fatal

	TraceLevel = "TRACE"
	DebugLevel = "DEBUG"
	InfoLevel  = "INFO"
	WarnLevel  = "WARN"
	ErrorLevel = "ERROR"
	FatalLevel = "FATAL"

	_timeFormat = "2006-01-02 15:04:05"
)

type ILog interface {
	Trace(text string, v ...interface{})
	Debug(text string, v ...interface{})
	Info(text string, v ...interface{})
	Warn(text string, v ...interface{})
	Error(text string, v ...interface{})
	Fatal(text string, v ...interface{})
}

type data struct {
	timestamp time.Time
	traceID   string
	position  string
	level     string
	content   string
}

var defaultLogger = newLoggerHandler(&Config{})

func Trace(text string, v ...interface{}) {
	defaultLogger.log(TraceLevel, text, v...)
}
func Debug(text string, v ...interface{}) {
	defaultLogger.log(DebugLevel, text, v...)
}
func Info(text string, v ...interface{}) {
	defaultLogger.log(InfoLevel, text, v...)
}
func Warn(text string, v ...interface{}) {
	defaultLogger.log(WarnLevel, text, v...)
}
func Error(text string, v ...interface{}) {
	defaultLogger.log(ErrorLevel, text, v...)
}
func Fatal(text string, v ...interface{}) {
	defaultLogger.log(FatalLevel, text, v...)
}

type LoggerHandler struct {
	lock        sync.RWMutex
	level       int
	dataQueue   chan data
	logAppender Appender
	wg          sync.WaitGroup
	closed      bool
}

type Config struct {
	Level       string `yaml:"level" default:"INFO"`          // 日志级别
	EnableTrace string `yaml:"trace"`                         // 是否输出traceID, True/False。默认True
	QueueLength int    `yaml:"queueLength" default:"50000"`   // 缓存队列大小
	AppenderNum int    `yaml:"appenderNum" default:"2"`       // 日志输出协程数量
	TimeFormat  string `yaml:"timeFormat"`                    // 日志时间输出格式
	Path        string `yaml:"path"`                          // 日志存储目录，为空时输出到控制台
	FileName    string `yaml:"fileName" default:"app.log"`    // 日志文件名称
	MaxSize     int    `yaml:"maxSize" default:"500"`         // 单个日志文件最大大小，单位：MB
	MaxBackups  int    `yaml:"maxBackups" default:"10"`       // 保留备份日志文件最大数量
	MaxAge      int    `yaml:"maxAge" default:"7"`            // 备份日志保留天数
	Compress    string `yaml:"compress"`                      // 是否对备份日志进行压缩, True/False。默认True
	EnableColor string `yaml:"color"`                         // 是否开启颜色
}

// Close 等待队列中的日志全部输出后关闭
func (lh *LoggerHandler) Close() {
	lh.lock.Lock()
	if lh.closed {
		lh.lock.Unlock()
		return
	}
	lh.closed = true
	close(lh.dataQueue)
	lh.lock.Unlock()

	lh.wg.Wait()
	lh.logAppender.close()
}

func DefaultLogger() *LoggerHandler {
	return defaultLogger
}

func InitLogger(config *Config) {
	old := defaultLogger
	defaultLogger = newLoggerHandler(config)
	old.Close()
}

func NewLogger(config *Config) *LoggerHandler {
	return newLoggerHandler(config)
}

func newLoggerHandler(config *Config) *LoggerHandler {
	if config.Level == "" {
		config.Level = InfoLevel
	}
	if config.QueueLength <= 0 {
		config.QueueLength = 50000
	}
	if config.AppenderNum <= 0 {
		config.AppenderNum = 2
	}
	if config.TimeFormat == "" {
		config.TimeFormat = _timeFormat
	}
	if config.FileName == "" {
		config.FileName = "app.log"
	}
	if config.MaxSize <= 0 {
		config.MaxSize = 500
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 10
	}
	if config.MaxAge <= 0 {
		config.MaxAge = 7
	}

	logger := &LoggerHandler{
		level:     getLevel(config.Level),
		dataQueue: make(chan data, config.QueueLength),
		logAppender: newLogAppender(appenderConfig{
			timeFormat:  config.TimeFormat,
			dir:         config.Path,
			fileName:    config.FileName,
			maxSize:     config.MaxSize,
			maxBackups:  config.MaxBackups,
			maxAge:      config.MaxAge,
			enableTrace: parseBool(config.EnableTrace, true),
			compress:    parseBool(config.Compress, true),
			enableColor: parseBool(config.EnableColor, false),
		}),
	}

	for i := 0; i < config.AppenderNum; i++ {
		logger.wg.Add(1)
		go func() {
			defer logger.wg.Done()
			for d := range logger.dataQueue {
				logger.logAppender.write(d)
			}
		}()
	}

	return logger
}

func parseBool(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}
	return b
}

func (lh *LoggerHandler) Trace(text string, v ...interface{}) {
	lh.log(TraceLevel, text, v...)
}

func (lh *LoggerHandler) Debug(text string, v ...interface{}) {
	lh.log(DebugLevel, text, v...)
}

func (lh *LoggerHandler) Info(text string, v ...interface{}) {
	lh.log(InfoLevel, text, v...)
}

func (lh *LoggerHandler) Warn(text string, v ...interface{}) {
	lh.log(WarnLevel, text, v...)
}

func (lh *LoggerHandler) Error(text string, v ...interface{}) {
	lh.log(ErrorLevel, text, v...)
}

func (lh *LoggerHandler) Fatal(text string, v ...interface{}) {
	lh.log(FatalLevel, text, v...)
}

func getLevel(level string) int {
	switch level {
	case TraceLevel:
		return _trace
	case DebugLevel:
		return _debug
	case InfoLevel:
		return _info
	case WarnLevel:
		return _warn
	case ErrorLevel:
		return _error
	case FatalLevel:
		return _fatal
	default:
		return _trace
	}
}

func getLevelColor(level string) string {
	switch level {
	case TraceLevel:
		return fmt.Sprintf("\033[1;37m%s\033[0m", TraceLevel)
	case DebugLevel:
		return fmt.Sprintf("\033[1;36m%s\033[0m", DebugLevel)
	case InfoLevel:
		return fmt.Sprintf("\033[1;32m%s\033[0m", InfoLevel)
	case WarnLevel:
		return fmt.Sprintf("\033[1;33m%s\033[0m", WarnLevel)
	case ErrorLevel, FatalLevel:
		return fmt.Sprintf("\033[1;31m%s\033[0m", level)
	default:
		return level
	}
}

func (lh *LoggerHandler) log(level string, text string, v ...interface{}) {
	if lh.level > getLevel(level) {
		return
	}

	_, file, line, _ := runtime.Caller(2)
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			file = file[i+1:]
			break
		}
	}

	d := data{
		timestamp: time.Now(),
		level:     level,
		content:   fmt.Sprintf(text, v...),
		traceID:   golocalv1.GetTraceID(),
		position:  fmt.Sprintf("%s:%d", file, line),
	}

	lh.lock.RLock()
	defer lh.lock.RUnlock()
	if lh.closed {
		return
	}
	lh.dataQueue <- d
}
