package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Calculator CalculatorConfig `mapstructure:"calculator" validate:"required"`
	Session    SessionConfig    `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// CalculatorConfig contains the limits applied by the reducer.
type CalculatorConfig struct {
	MaxOperandLength int `mapstructure:"max_operand_length" validate:"required,min=1,max=64"`
	MaxResultLength  int `mapstructure:"max_result_length" validate:"required,min=1,max=64"`
}

// SessionConfig contains the settings of the session manager.
type SessionConfig struct {
	MailboxSize          int `mapstructure:"mailbox_size" validate:"required,min=1,max=4096"`
	MaxSessions          int `mapstructure:"max_sessions" validate:"required,gt=0"`
	IdleTTLMinutes       int `mapstructure:"idle_ttl_minutes" validate:"required,gt=0"`
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"required,gt=0"`
}

// IdleTTL returns how long a session may stay idle.
func (c SessionConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLMinutes) * time.Minute
}

// SweepInterval returns how often idle sessions are looked for.
func (c SessionConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}
