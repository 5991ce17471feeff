package error

// GenericError is implemented by every typed error in this package so the
// recovery middleware can translate panics into the JSON envelope.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
