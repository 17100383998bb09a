package config

// Default values for the batching pipeline.
const (
	// DefaultBufferSize is the max lines buffered before a size flush.
	DefaultBufferSize = 10
	// DefaultBufferTimeout is the quiescence timeout in seconds.
	DefaultBufferTimeout = 2.0
)

// GetDefaults returns the default configuration values as koanf keys.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"webhook_url":    "",
		"title":          "",
		"format":         "googlechat",
		"buffer_size":    DefaultBufferSize,
		"buffer_timeout": DefaultBufferTimeout,
		"dry_run":        false,
	}
}
