// internal/workers/matching/send-match-digest/config.go
package sendmatchdigest

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string
	MaxMatches   int
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxMatches: 5,
		Timeout:    30 * time.Second,
	}
}
