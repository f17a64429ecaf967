package utils

import "net/url"

// DefaultAvatar is a DiceBear initials image, 256px PNG.
func DefaultAvatar(fullName string) string {
	seed := url.QueryEscape(fullName)
	return "https://api.dicebear.com/7.x/initials/png?seed=" + seed +
		"&size=256&backgroundType=gradientLinear"
}
