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
	"time"

	"github.com/patrickmn/go-cache"
)

// memoryStorage 基于github.com/patrickmn/go-cache的本地存储
type memoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage(cleanupInterval time.Duration) Storage {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &memoryStorage{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *memoryStorage) Get(key string) (string, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *memoryStorage) Set(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	s.cache.Set(key, value, ttl)
	return nil
}

func (s *memoryStorage) Remove(key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *memoryStorage) Keys() ([]string, error) {
	items := s.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *memoryStorage) Clear() error {
	s.cache.Flush()
	return nil
}
