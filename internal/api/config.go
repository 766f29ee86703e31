package api

import "time"

// Config binds the HTTP_* and CHAT_RATE_* variables.
type Config struct {
	Addr              string        `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins    []string      `envconfig:"HTTP_ALLOWED_ORIGINS" default:"*"`
	ReadTimeout       time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"2m"`
	ChatRatePerMinute int           `envconfig:"CHAT_RATE_PER_MINUTE" default:"20"`
	ChatRateBurst     int           `envconfig:"CHAT_RATE_BURST" default:"5"`
}
