package checkout

import (
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

// Step is the checkout position. Transitions move one step at a time and
// only forward past payment.
type Step string

const (
	StepCustomer  Step = "customer"
	StepAddress   Step = "address"
	StepPayment   Step = "payment"
	StepCompleted Step = "completed"
)

var stepOrder = map[Step]int{
	StepCustomer:  0,
	StepAddress:   1,
	StepPayment:   2,
	StepCompleted: 3,
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := stepOrder[s]
	return ok
}

// Transition validates a move from current to target. Forward moves advance
// exactly one step. Backward moves are free between the form steps; payment
// and completed are points of no return.
func Transition(current, target Step) error {
	from, ok := stepOrder[current]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step").WithDetails(map[string]any{"step": string(current)})
	}
	to, ok := stepOrder[target]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step").WithDetails(map[string]any{"step": string(target)})
	}

	switch {
	case to == from:
		return nil
	case to == from+1:
		return nil
	case to < from && from <= stepOrder[StepAddress]:
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "checkout step transition not allowed").WithDetails(map[string]any{
		"from": string(current),
		"to":   string(target),
	})
}
