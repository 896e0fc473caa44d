// Package classifier maps a raw HTTP signal to an accept/reject outcome
// under a strictness policy. Classification is pure: identical inputs always
// yield identical outcomes, which is what makes cached verdicts trustworthy.
package classifier

import (
	"strings"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/xjson"
)

type Outcome int

const (
	Reject Outcome = iota
	Accept
)

func (o Outcome) String() string {
	if o == Accept {
		return "accept"
	}
	return "reject"
}

// authErrorBody is the error envelope a well-behaved API returns to an
// unauthenticated caller. Reaching the real service yields this document
// with a 401; interception pages and block walls do not reproduce it.
type authErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Classify decides whether a concrete response proves the target was
// reached. Deny markers override everything; inconclusive statuses never
// accept; strict mode additionally requires the 401 auth-error envelope.
func Classify(status int, body string, policy domain.ClassifierConfig) Outcome {
	lower := strings.ToLower(body)
	for _, marker := range policy.DenyBodyMarkers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return Reject
		}
	}

	for _, s := range policy.InconclusiveStatuses {
		if status == s {
			return Reject
		}
	}

	if !policy.Permissive {
		if status != 401 {
			return Reject
		}
		if !wellFormedAuthError(body) {
			return Reject
		}
		return Accept
	}

	for _, s := range policy.AcceptStatuses {
		if status == s {
			return Accept
		}
	}
	return Reject
}

func wellFormedAuthError(body string) bool {
	var parsed authErrorBody
	if err := xjson.Unmarshal([]byte(body), &parsed); err != nil {
		return false
	}
	return parsed.Error.Message != "" && (parsed.Error.Type != "" || parsed.Error.Code != "")
}
