package dispatch

import "errors"

var (
	// ErrInvalidEndpoint indicates the endpoint URL is missing or unusable.
	ErrInvalidEndpoint = errors.New("dispatch.invalid_endpoint")

	// ErrInvalidPayload indicates the payload could not be encoded.
	ErrInvalidPayload = errors.New("dispatch.invalid_payload")

	// ErrDeliveryFailed indicates the single delivery attempt failed.
	ErrDeliveryFailed = errors.New("dispatch.delivery_failed")
)
