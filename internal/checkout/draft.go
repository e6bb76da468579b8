package checkout

import (
	"sync"
	"time"

	"github.com/i9team/guilherme-ecommerce/internal/orders"
	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
)

// Customer holds the step-one form fields.
type Customer struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	DDIPrefix string `json:"ddiPrefix"`
	Phone     string `json:"phone"`
	TaxID     string `json:"taxId"`
}

// Address holds the step-two form fields.
type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// BumpOffer is one cross-sell shown alongside the checkout form.
type BumpOffer struct {
	Product  models.Product `json:"product"`
	Accepted bool           `json:"accepted"`
}

// Draft is one session's in-progress checkout. Drafts live only in memory:
// an abandoned checkout costs nothing to discard.
type Draft struct {
	SessionID string
	Step      Step
	Mode      string

	Customer Customer
	Address  Address

	ShippingOptionID string
	Bumps            []BumpOffer

	// Payment is set exactly once, by a successful submit.
	Payment *orders.PaymentDescriptor

	// submitting guards the one-shot submit against concurrent calls.
	submitting bool

	UpdatedAt time.Time
}

const draftTTL = 2 * time.Hour

// draftRegistry holds live drafts keyed by session. Expired entries are
// dropped lazily on access.
type draftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

func newDraftRegistry() *draftRegistry {
	return &draftRegistry{
		drafts: map[string]*Draft{},
		ttl:    draftTTL,
		now:    time.Now,
	}
}

// get returns the live draft for the session, or nil.
func (r *draftRegistry) get(sessionID string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[sessionID]
	if !ok {
		return nil
	}
	if r.now().Sub(draft.UpdatedAt) > r.ttl {
		delete(r.drafts, sessionID)
		return nil
	}
	return draft
}

// put stores the draft and refreshes its expiry.
func (r *draftRegistry) put(draft *Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft.UpdatedAt = r.now()
	r.drafts[draft.SessionID] = draft
}

// remove drops the session's draft.
func (r *draftRegistry) remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, sessionID)
}

// beginSubmit atomically flips the in-flight flag. It returns false when a
// submit is already running for the session.
func (r *draftRegistry) beginSubmit(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[sessionID]
	if !ok || draft.submitting {
		return false
	}
	draft.submitting = true
	return true
}

// endSubmit clears the in-flight flag.
func (r *draftRegistry) endSubmit(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if draft, ok := r.drafts[sessionID]; ok {
		draft.submitting = false
	}
}
