package apiclient

import (
	"net/http"

	"github.com/mediahub/internal/auth"
)

// tokenTransport injects the current credential into every outgoing request.
// The token lookup happens per request, so a login or logout between calls is
// picked up without rebuilding the client.
type tokenTransport struct {
	base  http.RoundTripper
	store auth.TokenStore
}

// RoundTrip sets the Authorization header to the raw token value when one is
// present. The backend matches the literal token string, so no scheme prefix
// is added. Absence of a token is not an error; the request goes out as-is.
func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := t.store.Token()
	if !ok {
		return t.base.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set("Authorization", token)
	return t.base.RoundTrip(r)
}

// newHTTPClient builds an http.Client whose transport injects the credential
func newHTTPClient(store auth.TokenStore) *http.Client {
	return &http.Client{
		Transport: &tokenTransport{
			base:  http.DefaultTransport,
			store: store,
		},
		Timeout: requestTimeout,
	}
}
