// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - External errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SnapshotPath locates the durable record snapshot.
	SnapshotPath string `koanf:"snapshot_path"`

	// PushQueueSize bounds the push-channel message queue.
	PushQueueSize int `koanf:"push_queue_size"`

	// BusCapacity sets the per-subscriber notification buffer.
	BusCapacity int `koanf:"bus_capacity"`

	// BusinessOpenHour and BusinessCloseHour bound the scheduling
	// advisory window, in local wall-clock hours.
	BusinessOpenHour  int `koanf:"business_open_hour"`
	BusinessCloseHour int `koanf:"business_close_hour"`

	// SuggestDebounceMS is the quiet period for suggestion lookups.
	SuggestDebounceMS int `koanf:"suggest_debounce_ms"`

	// ReminderIntervalSeconds is how often upcoming interviews are
	// checked for reminders.
	ReminderIntervalSeconds int `koanf:"reminder_interval_seconds"`

	// OCREndpoint is the autofill/OCR service URL. Empty disables the
	// image-analysis boundary.
	OCREndpoint string `koanf:"ocr_endpoint"`

	// OCRTimeoutMS bounds one OCR request.
	OCRTimeoutMS int `koanf:"ocr_timeout_ms"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9090",
		SnapshotPath:            "data/candidates.json",
		PushQueueSize:           1024,
		BusCapacity:             64,
		BusinessOpenHour:        9,
		BusinessCloseHour:       18,
		SuggestDebounceMS:       150,
		ReminderIntervalSeconds: 60,
		OCREndpoint:             "",
		OCRTimeoutMS:            10_000,
	}
}
