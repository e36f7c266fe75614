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
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/tools"
	"github.com/go-redis/redis/v8"
)

const (
	ClusterMode = "cluster"

	scanCount = 100
)

type RedisConfig struct {
	Mode         string        `yaml:"mode" json:"mode"`
	Addrs        []string      `yaml:"addrs" json:"addrs"`
	Password     string        `yaml:"password" json:"-"`
	DB           int           `yaml:"db" json:"db"`
	ReadTimeout  time.Duration `yaml:"readTimeout" default:"10s" json:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout" default:"20s" json:"writeTimeout"`
	PoolSize     int           `yaml:"poolSize" json:"poolSize"`
	MinIdleConns int           `yaml:"minIdleConns" default:"20" json:"minIdleConns"`
	MaxConnAge   time.Duration `yaml:"maxConnAge" default:"80s" json:"maxConnAge"`
	KeyPrefix    string        `yaml:"keyPrefix" default:"luca:" json:"keyPrefix"`
}

// RedisStorage 多端共享登录态时使用redis存储
type RedisStorage struct {
	config        RedisConfig
	client        *redis.Client
	clusterClient *redis.ClusterClient
}

func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	if err := tools.DoTagFunc(&config, []tools.FnObj{{Fn: tools.SetDefaultValueIfNil}}); err != nil {
		return nil, err
	}
	if len(config.Addrs) == 0 {
		return nil, fmt.Errorf("redis storage needs at least one addr")
	}

	logger.Info("**** Create Redis Storage **** \n Redis config: %v", tools.ToJson(config))
	s := &RedisStorage{config: config}
	switch config.Mode {
	case ClusterMode:
		s.clusterClient = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        config.Addrs,
			Password:     config.Password,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,
			MaxConnAge:   config.MaxConnAge,
		})
	default:
		s.client = redis.NewClient(&redis.Options{
			Addr:         config.Addrs[0],
			Password:     config.Password,
			DB:           config.DB,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,
			MaxConnAge:   config.MaxConnAge,
		})
	}

	if err := s.GetRedis().Ping(context.Background()).Err(); err != nil {
		s.Close()
		return nil, fmt.Errorf("connect redis failed: %w", err)
	}

	return s, nil
}

func (s *RedisStorage) GetRedis() redis.Cmdable {
	if s.clusterClient != nil {
		return s.clusterClient
	}
	return s.client
}

func (s *RedisStorage) Close() {
	var err error
	if s.clusterClient != nil {
		err = s.clusterClient.Close()
	} else {
		err = s.client.Close()
	}
	if err != nil {
		logger.Error("close redis storage failed. Error: %s", err.Error())
	}
}

func (s *RedisStorage) key(k string) string {
	return s.config.KeyPrefix + k
}

func (s *RedisStorage) Get(key string) (string, bool, error) {
	v, err := s.GetRedis().Get(context.Background(), s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) Set(key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.GetRedis().Set(context.Background(), s.key(key), value, ttl).Err()
}

func (s *RedisStorage) Remove(key string) error {
	return s.GetRedis().Del(context.Background(), s.key(key)).Err()
}

func (s *RedisStorage) Keys() ([]string, error) {
	var (
		lock sync.Mutex
		keys []string
	)
	err := s.scan(func(ctx context.Context, c redis.Cmdable, fullKeys []string) error {
		lock.Lock()
		defer lock.Unlock()
		for _, k := range fullKeys {
			keys = append(keys, strings.TrimPrefix(k, s.config.KeyPrefix))
		}
		return nil
	})
	return keys, err
}

func (s *RedisStorage) Clear() error {
	return s.scan(func(ctx context.Context, c redis.Cmdable, fullKeys []string) error {
		if len(fullKeys) == 0 {
			return nil
		}
		return c.Del(ctx, fullKeys...).Err()
	})
}

// scan 遍历带前缀的key，集群模式下遍历所有master
func (s *RedisStorage) scan(fn func(ctx context.Context, c redis.Cmdable, keys []string) error) error {
	ctx := context.Background()
	scanNode := func(ctx context.Context, c redis.Cmdable) error {
		var cursor uint64
		for {
			keys, next, err := c.Scan(ctx, cursor, s.config.KeyPrefix+"*", scanCount).Result()
			if err != nil {
				return err
			}
			if err = fn(ctx, c, keys); err != nil {
				return err
			}
			if next == 0 {
				return nil
			}
			cursor = next
		}
	}

	if s.clusterClient != nil {
		return s.clusterClient.ForEachMaster(ctx, func(ctx context.Context, client *redis.Client) error {
			return scanNode(ctx, client)
		})
	}
	return scanNode(ctx, s.client)
}
