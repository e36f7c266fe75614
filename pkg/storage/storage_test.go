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

package storage

import (
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage(10 * time.Millisecond)

	_, ok, err := s.Get("missing")
	assert.Nil(t, err)
	assert.False(t, ok)

	assert.Nil(t, s.Set("authToken", "abc", 0))
	assert.Nil(t, s.Set("short", "lived", 20*time.Millisecond))

	v, ok, err := s.Get("authToken")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	keys, err := s.Keys()
	assert.Nil(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"authToken", "short"}, keys)

	time.Sleep(40 * time.Millisecond)
	_, ok, _ = s.Get("short")
	assert.False(t, ok)
	keys, _ = s.Keys()
	assert.Equal(t, []string{"authToken"}, keys)

	assert.Nil(t, s.Remove("authToken"))
	_, ok, _ = s.Get("authToken")
	assert.False(t, ok)

	assert.Nil(t, s.Set("a", "1", 0))
	assert.Nil(t, s.Clear())
	keys, _ = s.Keys()
	assert.Empty(t, keys)
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStorage(RedisConfig{Addrs: []string{mr.Addr()}})
	require.Nil(t, err)
	defer s.Close()

	assert.Nil(t, s.Set("authToken", "abc", 0))
	assert.Nil(t, s.Set("short", "lived", time.Minute))
	assert.True(t, mr.Exists("luca:authToken"))

	v, ok, err := s.Get("authToken")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	keys, err := s.Keys()
	assert.Nil(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"authToken", "short"}, keys)

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get("short")
	assert.Nil(t, err)
	assert.False(t, ok)

	// 其他前缀的key不受Clear影响
	assert.Nil(t, mr.Set("other:key", "v"))
	assert.Nil(t, s.Clear())
	keys, _ = s.Keys()
	assert.Empty(t, keys)
	assert.True(t, mr.Exists("other:key"))

	assert.Nil(t, s.Set("gone", "v", 0))
	assert.Nil(t, s.Remove("gone"))
	_, ok, _ = s.Get("gone")
	assert.False(t, ok)
}

func TestRedisStorageConnectFailed(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStorage(RedisConfig{Addrs: []string{addr}, ReadTimeout: 100 * time.Millisecond})
	assert.NotNil(t, err)

	_, err = NewRedisStorage(RedisConfig{})
	assert.NotNil(t, err)
}

func TestNew(t *testing.T) {
	s, err := New(Config{Mode: ModeMemory})
	assert.Nil(t, err)
	assert.NotNil(t, s)

	_, err = New(Config{Mode: "sqlite"})
	assert.NotNil(t, err)

	mr := miniredis.RunT(t)
	s, err = New(Config{Mode: ModeRedis, Redis: RedisConfig{Addrs: []string{mr.Addr()}}})
	assert.Nil(t, err)
	s.(*RedisStorage).Close()
}
