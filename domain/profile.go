package domain

import "time"

// DeviceProfile carries environment capability facts used to parameterize
// upload limits and request timeouts. Immutable after derivation and
// re-derivable at any time from the agent string.
type DeviceProfile struct {
	IsMobile       bool
	IsTablet       bool
	MaxUploadBytes int64
	RequestTimeout time.Duration
}
