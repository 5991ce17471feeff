package error

import "net/http"

// UpstreamLookupError signals a failed or malformed country-rule lookup
// against the upstream data store.
type UpstreamLookupError string

func (err UpstreamLookupError) Error() string {
	return string(err)
}

func (err UpstreamLookupError) ErrCode() string {
	return "UPSTREAM_LOOKUP_ERROR"
}

func (err UpstreamLookupError) StatusCode() int {
	return http.StatusBadGateway
}
