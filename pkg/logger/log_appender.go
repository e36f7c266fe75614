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
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/caiflower/luca-http/pkg/e"
	"github.com/caiflower/luca-http/pkg/syncx"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Appender interface {
	write(data data)
	close()
}

type appenderConfig struct {
	timeFormat  string
	dir         string
	fileName    string
	maxSize     int
	maxBackups  int
	maxAge      int
	enableTrace bool
	compress    bool
	enableColor bool
}

type logAppender struct {
	timeFormat  string
	enableTrace bool
	enableColor bool

	bufPool   sync.Pool
	out       io.Writer
	rolling   *lumberjack.Logger
	writeLock sync.Locker
}

// newLogAppender dir为空时输出到控制台，否则写文件并按大小切分
func newLogAppender(config appenderConfig) Appender {
	appender := &logAppender{
		timeFormat:  config.timeFormat,
		enableTrace: config.enableTrace,
		enableColor: config.enableColor,
		bufPool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			}},
		writeLock: syncx.NewSpinLock(),
	}

	if config.dir == "" {
		appender.out = os.Stdout
	} else {
		appender.rolling = &lumberjack.Logger{
			Filename:   filepath.Join(config.dir, config.fileName),
			MaxSize:    config.maxSize,
			MaxBackups: config.maxBackups,
			MaxAge:     config.maxAge,
			Compress:   config.compress,
			LocalTime:  true,
		}
		appender.out = appender.rolling
	}

	return appender
}

func (appender *logAppender) write(data data) {
	defer e.OnError("[logger appender]")

	level := data.level
	if appender.enableColor {
		level = getLevelColor(level)
	}
	buf := appender.bufPool.Get().(*strings.Builder)
	buf.Reset()
	defer appender.bufPool.Put(buf)

	buf.WriteString(data.timestamp.Format(appender.timeFormat))
	buf.WriteString(" [")
	buf.WriteString(level)
	buf.WriteString("] ")
	if appender.enableTrace && data.traceID != "" {
		traceID := data.traceID
		if appender.enableColor {
			traceID = fmt.Sprintf("\033[1;35m%s\033[0m", traceID)
		}
		buf.WriteString("[")
		buf.WriteString(traceID)
		buf.WriteString("] ")
	}
	buf.WriteString(data.position)
	buf.WriteString(" - ")
	buf.WriteString(data.content)
	buf.WriteString("\n")

	appender.writeLock.Lock()
	defer appender.writeLock.Unlock()
	if _, err := io.WriteString(appender.out, buf.String()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[ERROR] - output err %s\n", err.Error())
	}
}

func (appender *logAppender) close() {
	if appender.rolling != nil {
		if err := appender.rolling.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[logger appender] close logfile err: %s\n", err)
		}
	}
}
