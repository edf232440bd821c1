// File: utils/constants.go
package utils

import "time"

// RevokedTokenPrefix is the prefix used for Redis keys of logged-out tokens.
const RevokedTokenPrefix = "revoked:"

// OTPTTL is how long a one-time code stays valid.
const OTPTTL = 10 * time.Minute

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// RequestTimeout bounds every repository round trip.
const RequestTimeout = 5 * time.Second
