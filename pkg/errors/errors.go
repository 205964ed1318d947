package errors

import "fmt"

// ErrNotFound indicates a requested record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrInvalidStateTransition indicates a dispatcher transition that the
// state machine does not allow
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrDispatchInFlight indicates a second dispatch was attempted while a
// payment attempt is still pending for the session
type ErrDispatchInFlight struct {
	SessionID string
}

func (e *ErrDispatchInFlight) Error() string {
	return fmt.Sprintf("payment dispatch already in flight for session %s", e.SessionID)
}

// ErrGatewayUnavailable covers gateway session-creation failures: network
// errors, timeouts and non-2xx responses. Retryable by the user.
type ErrGatewayUnavailable struct {
	Reason string
}

func (e *ErrGatewayUnavailable) Error() string {
	return fmt.Sprintf("payment gateway unavailable: %s", e.Reason)
}

// ErrVerificationFailed indicates the gateway callback signature did not
// verify. Not retryable from the client; the charge may have gone through,
// so the user must be told to contact support.
type ErrVerificationFailed struct {
	GatewayOrderID string
}

func (e *ErrVerificationFailed) Error() string {
	return fmt.Sprintf("payment verification failed for gateway order %s", e.GatewayOrderID)
}

// ErrDuplicateOrderNumber indicates the generated order number collided
// with an existing record. The caller regenerates and retries once.
type ErrDuplicateOrderNumber struct {
	OrderNumber string
}

func (e *ErrDuplicateOrderNumber) Error() string {
	return fmt.Sprintf("order number already exists: %s", e.OrderNumber)
}

// ErrInvalidConfirmation indicates an assembled order confirmation failed
// schema validation and was rejected by the finalizer.
type ErrInvalidConfirmation struct {
	Violations []string
}

func (e *ErrInvalidConfirmation) Error() string {
	return fmt.Sprintf("order confirmation failed validation: %v", e.Violations)
}
