// internal/workers/matching/find-best-matches/config.go
package findbestmatches

import "time"

type Config struct {
	DefaultTopN int
	PoolCap     int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultTopN: 10,
		PoolCap:     500,
		Timeout:     30 * time.Second,
	}
}
