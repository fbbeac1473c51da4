package handler

import "strings"

// cutCredential splits a presented credential into its lookup and secret
// halves.
func cutCredential(cred string) (p1, p2 string, ok bool) {
	p1, p2, ok = strings.Cut(cred, ".")
	if !ok || p1 == "" || p2 == "" {
		return "", "", false
	}
	return p1, p2, true
}
