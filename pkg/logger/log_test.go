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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	golocalv1 "github.com/caiflower/luca-http/pkg/golocal/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerConsole(t *testing.T) {
	logger := NewLogger(&Config{Level: TraceLevel, EnableColor: "True"})
	group := sync.WaitGroup{}

	for i := 1; i <= 10; i++ {
		group.Add(1)
		go func(i int) {
			defer group.Done()
			golocalv1.PutTraceID("lt-" + strconv.Itoa(i))
			defer golocalv1.Clean()
			logger.Trace("trace%d", i)
			logger.Info("info%d", i)
			logger.Error("error%d", i)
		}(i)
	}

	group.Wait()
	logger.Close()
}

func TestLoggerFileOut(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(&Config{
		Level:       DebugLevel,
		Path:        dir,
		FileName:    "luca.log",
		AppenderNum: 4,
	})
	group := sync.WaitGroup{}

	for i := 1; i <= 100; i++ {
		group.Add(1)
		go func(i int) {
			defer group.Done()
			golocalv1.PutTraceID("lt-" + strconv.Itoa(i))
			defer golocalv1.Clean()
			logger.Trace("trace%d", i)
			logger.Debug("debug%d", i)
			logger.Warn("warn%d", i)
		}(i)
	}

	group.Wait()
	logger.Close()

	content, err := os.ReadFile(filepath.Join(dir, "luca.log"))
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 200)
	assert.NotContains(t, string(content), "[TRACE]")
	assert.Contains(t, string(content), "[lt-42] log_test.go")
	assert.Contains(t, string(content), "- warn42")
}

func TestLoggerDisableTrace(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(&Config{Path: dir, EnableTrace: "False"})

	restore := golocalv1.ScopeTraceID("hidden")
	logger.Info("hello %s", "luca")
	restore()
	logger.Close()

	content, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.Nil(t, err)
	assert.Contains(t, string(content), "[INFO] log_test.go")
	assert.Contains(t, string(content), "hello luca")
	assert.NotContains(t, string(content), "hidden")
}

func TestLoggerClosed(t *testing.T) {
	logger := NewLogger(&Config{})
	logger.Close()
	logger.Close()
	// 关闭之后写日志直接丢弃
	logger.Info("dropped")
}
