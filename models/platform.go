package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Platform identifies the mobile operating system a device runs on.
// It decides which push payload limit applies to the device.
type Platform int

const (
	// PlatformAndroid covers Android devices. It is also the fallback for any
	// platform string that does not name iOS.
	PlatformAndroid Platform = iota
	// PlatformIOS covers iPhone and iPad devices.
	PlatformIOS
)

// Platforms lists every platform in dispatch order. Android envelopes are
// always queued before iOS envelopes within one cycle.
var Platforms = []Platform{PlatformAndroid, PlatformIOS}

const (
	androidName = "android"
	iosName     = "ios"
)

// ParsePlatform maps a free-form platform string to a [Platform].
// Any string containing "ios" (case-insensitive) is iOS, everything else
// is Android.
func ParsePlatform(s string) Platform {
	if strings.Contains(strings.ToLower(s), iosName) {
		return PlatformIOS
	}
	return PlatformAndroid
}

func (p Platform) String() string {
	switch p {
	case PlatformAndroid:
		return androidName
	case PlatformIOS:
		return iosName
	default:
		return fmt.Sprintf("platform(%d)", int(p))
	}
}

// MarshalJSON encodes the platform as its lowercase name.
func (p Platform) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a platform name with [ParsePlatform].
func (p *Platform) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("platform must be a string: %w", err)
	}
	*p = ParsePlatform(s)
	return nil
}
