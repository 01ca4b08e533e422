package config

import (
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// getInt returns the integer at key, or the registered default when the
// environment holds something that is not an integer.
func getInt(v *viper.Viper, key string) int {
	if i, err := cast.ToIntE(v.Get(key)); err == nil {
		return i
	}
	return cast.ToInt(defaults[key])
}

func getBool(v *viper.Viper, key string) bool {
	if b, err := cast.ToBoolE(v.Get(key)); err == nil {
		return b
	}
	return cast.ToBool(defaults[key])
}

func getDuration(v *viper.Viper, key string) time.Duration {
	if d, err := cast.ToDurationE(v.Get(key)); err == nil && d > 0 {
		return d
	}
	return cast.ToDuration(defaults[key])
}
