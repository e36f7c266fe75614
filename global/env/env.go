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

package env

import (
	"net"
	"os"
	"strings"
)

const (
	PlatformWeapp = "weapp" // 微信小程序
	PlatformH5    = "h5"    // 内嵌H5
)

var (
	LocalhostIP string
	ConfigPath  string
	Platform    string
)

func init() {
	findLocalHostIP()
	initConfigPath()
	initPlatform()
}

func initConfigPath() {
	ConfigPath = os.Getenv("CONFIG_PATH")
	if ConfigPath == "" {
		ConfigPath = "./etc"
	}
}

// initPlatform 运行平台决定请求的基础地址，默认小程序
func initPlatform() {
	Platform = strings.ToLower(os.Getenv("LUCA_ENV"))
	if Platform != PlatformH5 {
		Platform = PlatformWeapp
	}
}

func findLocalHostIP() {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		LocalhostIP = "127.0.0.1"
		return
	}

	for _, address := range addrs {
		// 检查ip地址判断是否回环地址
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				LocalhostIP = ipnet.IP.String()
			}
		}
	}
	if LocalhostIP == "" {
		LocalhostIP = "127.0.0.1"
	}
}

func GetLocalHostIP() string {
	return LocalhostIP
}

func SetDefaultConfigPath(path string) {
	ConfigPath = path
}

func IsH5() bool {
	return Platform == PlatformH5
}

func IsWeapp() bool {
	return Platform == PlatformWeapp
}
