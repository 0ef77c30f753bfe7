package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag values win over config file values; the flag default applies when
// neither is set.

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func int64Setting(cmd *cobra.Command, flag, key string) int64 {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt64(key)
	}
	v, _ := cmd.Flags().GetInt64(flag)
	return v
}

func floatSetting(cmd *cobra.Command, flag, key string) float64 {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	v, _ := cmd.Flags().GetFloat64(flag)
	return v
}

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}
