// Package config provides the viper instance services read their settings from.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// New returns a viper instance backed by environment variables. A .env file
// in the working directory is loaded first when present; real environment
// variables take precedence over it. Keys are looked up upper-cased with
// '-' and '.' mapped to '_', so "store_driver" reads STORE_DRIVER.
func New(defaults map[string]any) *viper.Viper {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}
