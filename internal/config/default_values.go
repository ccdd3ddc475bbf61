package config

const (
	// DefaultHistoryMaxLines is the recall ring size Default() uses
	// when no config file sets one explicitly.
	DefaultHistoryMaxLines = 500
)
