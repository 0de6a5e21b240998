package common

import "strings"

// PlausibleEmail is the email check shared by the console form and the API:
// the address only needs an '@'. Deliverability is never checked.
func PlausibleEmail(s string) bool {
	return strings.Contains(s, "@")
}
