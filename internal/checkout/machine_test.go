package checkout

import (
	"testing"

	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

func TestTransitionForwardOneStep(t *testing.T) {
	t.Parallel()

	steps := []Step{StepCustomer, StepAddress, StepPayment, StepCompleted}
	for i := 0; i < len(steps)-1; i++ {
		if err := Transition(steps[i], steps[i+1]); err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", steps[i], steps[i+1], err)
		}
	}
}

func TestTransitionNeverSkips(t *testing.T) {
	t.Parallel()

	cases := [][2]Step{
		{StepCustomer, StepPayment},
		{StepCustomer, StepCompleted},
		{StepAddress, StepCompleted},
	}
	for _, c := range cases {
		err := Transition(c[0], c[1])
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("%s -> %s should be rejected with conflict, got %v", c[0], c[1], err)
		}
	}
}

func TestTransitionBackwardOnlyBetweenForms(t *testing.T) {
	t.Parallel()

	if err := Transition(StepAddress, StepCustomer); err != nil {
		t.Fatalf("address -> customer should be allowed: %v", err)
	}
	// Payment and completed are points of no return.
	for _, from := range []Step{StepPayment, StepCompleted} {
		for _, to := range []Step{StepCustomer, StepAddress} {
			if err := Transition(from, to); err == nil {
				t.Fatalf("%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestTransitionRejectsUnknownStep(t *testing.T) {
	t.Parallel()

	err := Transition(Step("warehouse"), StepAddress)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown step, got %v", err)
	}
}
