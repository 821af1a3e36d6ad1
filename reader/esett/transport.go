package esett

import "net/http"

type userAgentTransport struct {
	agent  string
	accept string
	base   http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	if t.accept != "" && req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", t.accept)
	}
	return t.base.RoundTrip(req)
}
