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
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenKey = "authToken"

var ErrTokenExpired = errors.New("token already expired")

// TokenStore 读写持久化的bearer token，空字符串表示未登录
type TokenStore struct {
	storage Storage
	key     string
}

func NewTokenStore(storage Storage, key string) *TokenStore {
	if key == "" {
		key = DefaultTokenKey
	}
	return &TokenStore{storage: storage, key: key}
}

func (s *TokenStore) Key() string {
	return s.key
}

func (s *TokenStore) Token() (string, error) {
	token, _, err := s.storage.Get(s.key)
	return token, err
}

// Save token为JWT时按exp设置过期时间，否则不过期
func (s *TokenStore) Save(token string) error {
	ttl, err := TokenTTL(token, time.Now())
	if err != nil {
		return err
	}
	return s.storage.Set(s.key, token, ttl)
}

func (s *TokenStore) SaveWithTTL(token string, ttl time.Duration) error {
	return s.storage.Set(s.key, token, ttl)
}

func (s *TokenStore) RemoveToken() error {
	return s.storage.Remove(s.key)
}

// TokenTTL 解析JWT的exp得到剩余有效期。非JWT或没有exp时返回0
func TokenTTL(token string, now time.Time) (time.Duration, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, nil
	}

	ttl := exp.Sub(now)
	if ttl <= 0 {
		return 0, ErrTokenExpired
	}
	return ttl, nil
}
