package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"github.com/herdius/herdius-savings/libs/log"
)

type detail struct {
	StateDBPath  string
	BlockDBPath  string
	S3Bucket     string
	InterestRate string // per-block rate as a decimal string, e.g. "0.0001"
}

var (
	configuration *detail
	once          sync.Once
)

// GetConfiguration loads the env section of the config file, falling back to
// defaults when no file is present. The interest rate is fixed at deployment;
// it is read once and never re-read.
func GetConfiguration(env string) *detail {
	if env != "staging" {
		env = "dev"
	}
	once.Do(func() {
		viper.SetConfigName("config")   // Config file name without extension
		viper.AddConfigPath("./config") // Path to config file

		viper.SetDefault(fmt.Sprint(env, ".statedbpath"), "./herdius/statedb")
		viper.SetDefault(fmt.Sprint(env, ".blockdbpath"), "./herdius/blockdb")
		viper.SetDefault(fmt.Sprint(env, ".s3backupbucket"), "")
		viper.SetDefault(fmt.Sprint(env, ".interestrate"), "0.0001")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn().Msgf("Config file not found, using defaults: %v", err)
		}
		configuration = &detail{
			StateDBPath:  viper.GetString(fmt.Sprint(env, ".statedbpath")),
			BlockDBPath:  viper.GetString(fmt.Sprint(env, ".blockdbpath")),
			S3Bucket:     viper.GetString(fmt.Sprint(env, ".s3backupbucket")),
			InterestRate: viper.GetString(fmt.Sprint(env, ".interestrate")),
		}
	})
	return configuration
}
