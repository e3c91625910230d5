// Package device derives environment capability facts from the client's
// agent string. Derivation is a pure function and cheap enough to run on
// every client construction, so profiles are never cached globally.
package device

import (
	"regexp"
	"time"

	"stitch-client/domain"
)

var (
	mobilePattern = regexp.MustCompile(`(?i)\b(android|iphone|ipad|ipod|mobile|blackberry|opera mini|windows phone)\b`)
	tabletPattern = regexp.MustCompile(`(?i)\b(ipad|tablet|kindle|silk|playbook)\b`)
)

// Two-tier limits: mobile runtimes get a tighter upload ceiling but a
// longer timeout budget to absorb slow radio links.
const (
	mobileMaxUploadBytes  = 50 * domain.MB
	desktopMaxUploadBytes = 100 * domain.MB

	mobileRequestTimeout  = 60 * time.Second
	desktopRequestTimeout = 30 * time.Second
)

// Derive computes a DeviceProfile from an agent string.
// Tablet detection is a stricter sub-pattern of mobile detection.
func Derive(agent string) domain.DeviceProfile {
	isMobile := mobilePattern.MatchString(agent)
	isTablet := isMobile && tabletPattern.MatchString(agent)

	profile := domain.DeviceProfile{
		IsMobile:       isMobile,
		IsTablet:       isTablet,
		MaxUploadBytes: desktopMaxUploadBytes,
		RequestTimeout: desktopRequestTimeout,
	}
	if isMobile {
		profile.MaxUploadBytes = mobileMaxUploadBytes
		profile.RequestTimeout = mobileRequestTimeout
	}
	return profile
}
