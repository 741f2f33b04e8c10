package utils

import (
	"fmt"

	ua "github.com/mileusna/useragent"
)

// DeviceInfo extracts a user-friendly device description from a User-Agent
// string, recorded on session creation.
func DeviceInfo(userAgent string) string {
	if userAgent == "" {
		return "Unknown Browser on Unknown OS"
	}

	parsed := ua.Parse(userAgent)

	browser := parsed.Name
	if browser == "" {
		browser = "Unknown Browser"
	}

	os := parsed.OS
	if os == "" {
		os = "Unknown OS"
	}

	return fmt.Sprintf("%s on %s", browser, os)
}
