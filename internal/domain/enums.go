package domain

// PaymentMethod represents the customer's payment method choice
type PaymentMethod string

const (
	PaymentMethodOnline         PaymentMethod = "ONLINE"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodOnline, PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}

// Label returns the customer-facing name used on confirmation records
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodOnline:
		return "Online Payment"
	case PaymentMethodCashOnDelivery:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

// PaymentStatus represents the status of a payment outcome
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// DispatchState represents the payment dispatcher state for one checkout
// attempt
type DispatchState string

const (
	DispatchIdle            DispatchState = "IDLE"
	DispatchAwaitingGateway DispatchState = "AWAITING_GATEWAY"
	DispatchVerifying       DispatchState = "VERIFYING"
	DispatchRecording       DispatchState = "RECORDING"
	DispatchSucceeded       DispatchState = "SUCCEEDED"
	DispatchFailed          DispatchState = "FAILED"
)

// CanTransitionTo checks if a dispatcher state transition is valid
func (s DispatchState) CanTransitionTo(next DispatchState) bool {
	switch s {
	case DispatchIdle:
		return next == DispatchAwaitingGateway || next == DispatchRecording
	case DispatchAwaitingGateway:
		// Dismissing the hosted gateway UI rewinds to IDLE.
		return next == DispatchVerifying || next == DispatchIdle || next == DispatchFailed
	case DispatchVerifying:
		return next == DispatchSucceeded || next == DispatchFailed
	case DispatchRecording:
		return next == DispatchSucceeded
	case DispatchSucceeded, DispatchFailed:
		return false // Terminal states
	default:
		return false
	}
}

// InFlight reports whether a dispatch attempt is currently pending. The
// submit surface must stay disabled while this is true.
func (s DispatchState) InFlight() bool {
	return s == DispatchAwaitingGateway || s == DispatchVerifying || s == DispatchRecording
}
