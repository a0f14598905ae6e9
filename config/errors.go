package config

import "errors"

var (
	// ErrNilMinBid indicates the minimum bid amount is unset.
	ErrNilMinBid = errors.New("config: minimum bid amount must be set")

	// ErrNegativeMinBid indicates a negative minimum bid amount.
	ErrNegativeMinBid = errors.New("config: minimum bid amount must not be negative")

	// ErrNonPositiveIncrement indicates the bid increment is zero or negative.
	ErrNonPositiveIncrement = errors.New("config: minimum bid increment must be positive")

	// ErrNonPositiveLockup indicates the bid lockup period is zero or negative.
	ErrNonPositiveLockup = errors.New("config: bid lockup period must be positive")

	// ErrNegativeSnipeWindow indicates a negative snipe extension window.
	ErrNegativeSnipeWindow = errors.New("config: snipe extension window must not be negative")

	// ErrSnipeWindowTooLong indicates the snipe window exceeds the lockup period.
	ErrSnipeWindowTooLong = errors.New("config: snipe extension window must not exceed the lockup period")
)
