// internal/workers/matching/query-mentor-pool/config.go
package querymentorpool

import "time"

type Config struct {
	IndexName string
	PoolCap   int
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName: "mentors",
		PoolCap:   500,
		Timeout:   15 * time.Second,
	}
}
