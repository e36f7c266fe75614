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
	"fmt"
	"time"
)

const (
	ModeMemory = "memory"
	ModeRedis  = "redis"
)

// Storage 持久化的key-value存储，ttl<=0表示不过期，过期的key读取时视为不存在
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string, ttl time.Duration) error
	Remove(key string) error
	Keys() ([]string, error)
	Clear() error
}

type Config struct {
	Mode            string        `yaml:"mode" default:"memory"`            // memory/redis
	TokenKey        string        `yaml:"tokenKey" default:"authToken"`     // token存储的key
	UserKey         string        `yaml:"userKey" default:"app-user-info"`  // 登录用户信息存储的key
	CleanupInterval time.Duration `yaml:"cleanupInterval" default:"1m"`     // 内存存储清理过期key的间隔
	Redis           RedisConfig   `yaml:"redis"`
}

func New(config Config) (Storage, error) {
	switch config.Mode {
	case ModeMemory, "":
		return NewMemoryStorage(config.CleanupInterval), nil
	case ModeRedis:
		s, err := NewRedisStorage(config.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", config.Mode)
	}
}
