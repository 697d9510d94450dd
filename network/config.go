package network

import "time"

// Config holds spectator feed settings
type Config struct {
	// Address to bind, e.g. "127.0.0.1:8080"
	Address string

	// Connection limits
	MaxSpectators int

	// Timing
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration // Must be less than PongTimeout

	// Buffer sizes
	SendQueueSize      int // Per spectator
	BroadcastQueueSize int
	MaxInboundSize     int64
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		MaxSpectators:      64,
		WriteTimeout:       10 * time.Second,
		PongTimeout:        60 * time.Second,
		PingInterval:       54 * time.Second,
		SendQueueSize:      256,
		BroadcastQueueSize: 64,
		MaxInboundSize:     512,
	}
}
