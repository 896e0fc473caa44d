package classifier

import (
	"testing"

	"github.com/eleven-am/probegate/internal/domain"
)

const authErrorBody401 = `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`

func strictPolicy() domain.ClassifierConfig {
	p := domain.DefaultClassifierConfig()
	p.Permissive = false
	return p
}

func permissivePolicy() domain.ClassifierConfig {
	p := domain.DefaultClassifierConfig()
	p.Permissive = true
	return p
}

func TestStrictAcceptsWellFormedAuthError(t *testing.T) {
	if got := Classify(401, authErrorBody401, strictPolicy()); got != Accept {
		t.Errorf("expected Accept, got %v", got)
	}
}

func TestStrictRejectsMalformedBody(t *testing.T) {
	cases := []string{
		"",
		"<html>login required</html>",
		`{"error":"string not object"}`,
		`{"error":{}}`,
		`{"message":"no error envelope"}`,
	}
	for _, body := range cases {
		if got := Classify(401, body, strictPolicy()); got != Reject {
			t.Errorf("body %q: expected Reject, got %v", body, got)
		}
	}
}

func TestStrictRejectsNon401(t *testing.T) {
	for _, status := range []int{200, 302, 403, 404} {
		if got := Classify(status, authErrorBody401, strictPolicy()); got != Reject {
			t.Errorf("status %d: expected Reject, got %v", status, got)
		}
	}
}

func TestPermissiveAcceptsAllowListedStatuses(t *testing.T) {
	for _, status := range []int{200, 301, 302, 401} {
		if got := Classify(status, "anything", permissivePolicy()); got != Accept {
			t.Errorf("status %d: expected Accept, got %v", status, got)
		}
	}
	for _, status := range []int{403, 404, 418} {
		if got := Classify(status, "anything", permissivePolicy()); got != Reject {
			t.Errorf("status %d: expected Reject, got %v", status, got)
		}
	}
}

func TestInconclusiveStatusesNeverAccept(t *testing.T) {
	for _, status := range []int{408, 429, 500, 502, 503, 504} {
		if got := Classify(status, authErrorBody401, strictPolicy()); got != Reject {
			t.Errorf("strict status %d: expected Reject, got %v", status, got)
		}
		if got := Classify(status, "ok page", permissivePolicy()); got != Reject {
			t.Errorf("permissive status %d: expected Reject, got %v", status, got)
		}
	}
}

func TestDenyMarkersOverrideAcceptingStatus(t *testing.T) {
	body := `{"error":{"message":"denied","type":"invalid_request_error","code":"unsupported_country_region_territory"}}`

	if got := Classify(401, body, strictPolicy()); got != Reject {
		t.Errorf("strict: expected Reject for region marker, got %v", got)
	}
	if got := Classify(200, "Sorry, service is not available in your country.", permissivePolicy()); got != Reject {
		t.Errorf("permissive: expected Reject for region marker, got %v", got)
	}
	if got := Classify(403, "Request is not allowed from this region", permissivePolicy()); got != Reject {
		t.Errorf("403 region page: expected Reject, got %v", got)
	}
}

func TestClassifyIsPure(t *testing.T) {
	policy := strictPolicy()
	first := Classify(401, authErrorBody401, policy)
	for i := 0; i < 100; i++ {
		if got := Classify(401, authErrorBody401, policy); got != first {
			t.Fatalf("classification not deterministic: %v then %v", first, got)
		}
	}
}
