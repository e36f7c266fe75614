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

package main

import (
	"context"
	"os"

	"github.com/caiflower/luca-http/global"
	"github.com/caiflower/luca-http/global/config"
	"github.com/caiflower/luca-http/pkg/http"
	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/safego"
	"github.com/caiflower/luca-http/pkg/storage"
	"github.com/caiflower/luca-http/pkg/tools"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CONFIG_PATH指向包含default.yaml的目录, LUCA_ENV=h5 时请求本地开发环境
func main() {
	defaultConfig := config.DefaultConfig{}
	if err := config.LoadDefaultConfig(&defaultConfig); err != nil {
		logger.Warn("load default config failed, use default values. Error: %s", err.Error())
		_ = tools.DoTagFunc(&defaultConfig, []tools.FnObj{{Fn: tools.SetDefaultValueIfNil}})
	}
	logger.InitLogger(&defaultConfig.LoggerConfig)

	store, err := storage.New(defaultConfig.StorageConfig)
	if err != nil {
		logger.Error("create storage failed. Error: %s", err.Error())
		os.Exit(1)
	}
	if resource, ok := store.(global.Resource); ok {
		global.DefaultResourceManger.Add(resource)
	}

	tokens := storage.NewTokenStore(store, defaultConfig.StorageConfig.TokenKey)
	users := storage.NewUserStore(store, defaultConfig.StorageConfig.UserKey, tokens)

	client := http.NewClient(defaultConfig.HttpConfig,
		http.WithTokenStore(tokens),
		http.WithMetric(http.NewMetric(nil)),
	)
	global.DefaultResourceManger.Add(client)

	safego.Go(func() {
		ctx := context.Background()

		login, err := http.Decode[storage.User](client.Post(ctx, "/auth/login", loginRequest{Username: "luca", Password: os.Getenv("LUCA_PASSWORD")}, &http.RequestConfig{
			NeedToken:   tools.BoolPtr(false),
			ShowLoading: true,
			LoadingText: "logging in...",
		}))
		if err != nil {
			logger.Error("login failed. Error: %s", err.Error())
			return
		}
		if err = users.Login(login.Data); err != nil {
			logger.Error("save login user failed. Error: %s", err.Error())
			return
		}

		profile, err := http.Decode[storage.UserProfile](client.Get(ctx, "/user/profile", map[string]interface{}{"scene": "example"}, &http.RequestConfig{
			Retry:              2,
			CustomErrorHandler: func(err error) { logger.Warn("load profile failed. Error: %s", err.Error()) },
		}))
		if err != nil {
			return
		}
		logger.Info("current user: %s", tools.ToJson(profile.Data))
	})

	global.DefaultResourceManger.Signal()
}
