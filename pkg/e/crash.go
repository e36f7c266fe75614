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

package e

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"
)

// OnError 必须直接defer调用，recover住panic并打印堆栈
func OnError(txt string) {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s [ERROR] - Got a runtime error %s. %v\n%s", time.Now().Format("2006-01-02 15:04:05"), txt, r, string(debug.Stack()))
	}
}
