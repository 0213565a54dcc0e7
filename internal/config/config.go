package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log       LogConfig       `mapstructure:"log"       validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// LogConfig contains all logging-related configuration settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// SchedulerConfig contains the default scheduler parameters. Individual
// invocations may still override them.
type SchedulerConfig struct {
	Weights          []float64 `mapstructure:"weights"           validate:"len=19"`
	DesiredRetention float64   `mapstructure:"desired_retention" validate:"gt=0,lte=1"`
	MaximumInterval  int       `mapstructure:"maximum_interval"  validate:"gte=1"`
	EnableFuzz       bool      `mapstructure:"enable_fuzz"`
}
