package error

import "net/http"

// UpstreamAuthError signals that the upstream credential issuer was
// unreachable or rejected the token exchange.
type UpstreamAuthError string

func (err UpstreamAuthError) Error() string {
	return string(err)
}

func (err UpstreamAuthError) ErrCode() string {
	return "UPSTREAM_AUTH_ERROR"
}

func (err UpstreamAuthError) StatusCode() int {
	return http.StatusBadGateway
}
