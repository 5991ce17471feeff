package utils

// ResponseData is the JSON envelope shared by every administrative endpoint.
type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded panics on error so the recovery middleware can translate it
// into a ResponseData payload. Handlers use it to keep the happy path flat.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
