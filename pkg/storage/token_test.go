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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, exp time.Time) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1001",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.Nil(t, err)
	return token
}

func TestTokenTTL(t *testing.T) {
	now := time.Now()

	ttl, err := TokenTTL(signToken(t, now.Add(time.Hour)), now)
	assert.Nil(t, err)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 1)

	_, err = TokenTTL(signToken(t, now.Add(-time.Minute)), now)
	assert.Equal(t, ErrTokenExpired, err)

	ttl, err = TokenTTL("opaque-session-token", now)
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), ttl)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("secret"))
	require.Nil(t, err)
	ttl, err = TokenTTL(noExp, now)
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), ttl)
}

func TestTokenStore(t *testing.T) {
	s := NewMemoryStorage(time.Minute)
	tokens := NewTokenStore(s, "")
	assert.Equal(t, DefaultTokenKey, tokens.Key())

	token, err := tokens.Token()
	assert.Nil(t, err)
	assert.Equal(t, "", token)

	assert.Nil(t, tokens.Save("opaque"))
	token, _ = tokens.Token()
	assert.Equal(t, "opaque", token)

	assert.Nil(t, tokens.SaveWithTTL("short", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)
	token, _ = tokens.Token()
	assert.Equal(t, "", token)

	assert.Equal(t, ErrTokenExpired, tokens.Save(signToken(t, time.Now().Add(-time.Hour))))

	assert.Nil(t, tokens.Save(signToken(t, time.Now().Add(time.Hour))))
	assert.Nil(t, tokens.RemoveToken())
	token, _ = tokens.Token()
	assert.Equal(t, "", token)
}

func TestUserStore(t *testing.T) {
	s := NewMemoryStorage(time.Minute)
	tokens := NewTokenStore(s, "")
	users := NewUserStore(s, "", tokens)

	assert.False(t, users.IsLoggedIn())
	assert.Equal(t, "", users.AccessToken())

	user := User{
		Profile: UserProfile{ID: 1, Username: "luca", Email: "luca@example.com"},
		Tokens:  UserLogin{ID: 1, AccessToken: "access", RefreshToken: "refresh"},
	}
	assert.Nil(t, users.Login(user))
	assert.True(t, users.IsLoggedIn())
	assert.Equal(t, "access", users.AccessToken())

	token, _ := tokens.Token()
	assert.Equal(t, "access", token)

	got, err := users.User()
	assert.Nil(t, err)
	assert.Equal(t, user, *got)

	assert.Nil(t, users.Logout())
	assert.False(t, users.IsLoggedIn())
	token, _ = tokens.Token()
	assert.Equal(t, "", token)
}
