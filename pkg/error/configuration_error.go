package error

import "net/http"

// ConfigurationError signals that a known country has no usable timezone
// mapping, so no admission decision is possible.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return string(err)
}

func (err ConfigurationError) ErrCode() string {
	return "CONFIGURATION_ERROR"
}

func (err ConfigurationError) StatusCode() int {
	return http.StatusInternalServerError
}
