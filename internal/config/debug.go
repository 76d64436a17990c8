package config

import "os"

func IsDebug() bool {
	return os.Getenv("WEARBOT_DEBUG") == "1"
}
