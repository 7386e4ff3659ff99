package config

type LogConfig struct {
	LogLevel   string `json:"logLevel" yaml:"logLevel"`
	LogHandler string `json:"logHandler" yaml:"logHandler"`
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		LogLevel:   "info",
		LogHandler: "default",
	}
}
