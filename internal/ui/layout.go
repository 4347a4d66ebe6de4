package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// secondary details.
	LayoutCompactWidth = 100

	// LayoutMinWidth is the narrowest terminal the table renders in.
	LayoutMinWidth = 40
)

// Log overlay limits.
const (
	// LogTailLines is the number of log lines the overlay reads.
	LogTailLines = 500
)

// Timing constants.
const (
	// ToastDuration is how long a notification stays in the status line.
	ToastDuration = 4 * time.Second

	// ClockInterval is the header clock tick used to age "updated" labels.
	ClockInterval = time.Second

	// SessionWarnWindow is how early the header warns about token expiry.
	SessionWarnWindow = 10 * time.Minute
)
