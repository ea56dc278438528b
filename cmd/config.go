/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"strings"

	"github.com/gnames/dwhetl/internal/iofs"
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of environment variables read by dwhetl.
const envPrefix = "DWHETL"

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envKeys are the config keys that can be set from the environment.
// They match the fields included in config.ToOptions(), i.e. persistent
// configuration that can be stored in config.yaml.
var envKeys = []string{
	"warehouse.driver",
	"warehouse.host",
	"warehouse.port",
	"warehouse.user",
	"warehouse.password",
	"warehouse.database",
	"warehouse.ssl_mode",
	"warehouse.path",
	"warehouse.connect_timeout",

	"sources.region",
	"sources.iam_role_arn",
	"sources.access_key_id",
	"sources.secret_access_key",
	"sources.log_data",
	"sources.log_jsonpath",
	"sources.song_data",
	"sources.test_log_data",
	"sources.test_song_data",

	"log.level",
	"log.format",
	"log.destination",
}

// envName converts a config key to its environment variable,
// warehouse.ssl_mode becomes DWHETL_WAREHOUSE_SSL_MODE.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one so it is clear which of them
	// are allowed.
	for _, key := range envKeys {
		_ = v.BindEnv(key, envName(key))
	}
}
