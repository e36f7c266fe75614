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

package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	var n Notifier = r
	var nav Navigator = r

	n.StartLoading("loading")
	n.StartLoading("loading")
	n.StopLoading()
	assert.Equal(t, 1, r.Loading())
	assert.Equal(t, 2, r.LoadingStarted())
	n.StopLoading()
	n.StopLoading()
	assert.Equal(t, 0, r.Loading())

	n.ShowError("denied")
	n.ShowToast("hi")
	n.ShowSuccess("saved")
	assert.Equal(t, []string{"denied"}, r.Errors())
	assert.Equal(t, []string{"hi"}, r.Toasts())
	assert.Equal(t, []string{"saved"}, r.Successes())

	assert.Nil(t, nav.ReLaunch("/pages/login/index", nil))
	assert.Nil(t, nav.ReLaunch("/pages/doctor/index", map[string]interface{}{"id": 7}))
	assert.Equal(t, []string{"/pages/login/index", "/pages/doctor/index?id=7"}, r.Relaunches())
}

func TestLogHost(t *testing.T) {
	n := NewLogNotifier(nil)
	n.StartLoading("loading")
	n.StopLoading()
	n.ShowError("boom")
	assert.Nil(t, NewLogNavigator(nil).ReLaunch("/pages/login/index", nil))
}
