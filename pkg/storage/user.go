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
	"github.com/caiflower/luca-http/pkg/tools"
)

const DefaultUserKey = "app-user-info"

type UserLogin struct {
	ID           int64  `json:"id"`
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`
}

type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type User struct {
	Profile UserProfile `json:"profile"`
	Tokens  UserLogin   `json:"tokens"`
}

// UserStore 保存登录用户，登录时同步写入access token供请求管道使用
type UserStore struct {
	storage Storage
	key     string
	tokens  *TokenStore
}

func NewUserStore(storage Storage, key string, tokens *TokenStore) *UserStore {
	if key == "" {
		key = DefaultUserKey
	}
	return &UserStore{storage: storage, key: key, tokens: tokens}
}

func (s *UserStore) Login(user User) error {
	if err := s.tokens.Save(user.Tokens.AccessToken); err != nil {
		return err
	}
	return s.storage.Set(s.key, tools.ToJson(user), 0)
}

// User 未登录时返回nil
func (s *UserStore) User() (*User, error) {
	v, ok, err := s.storage.Get(s.key)
	if err != nil || !ok {
		return nil, err
	}
	user := &User{}
	if err = tools.Unmarshal([]byte(v), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserStore) IsLoggedIn() bool {
	user, err := s.User()
	return err == nil && user != nil
}

func (s *UserStore) AccessToken() string {
	user, err := s.User()
	if err != nil || user == nil {
		return ""
	}
	return user.Tokens.AccessToken
}

func (s *UserStore) Logout() error {
	if err := s.tokens.RemoveToken(); err != nil {
		return err
	}
	return s.storage.Remove(s.key)
}
