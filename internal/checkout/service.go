package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i9team/guilherme-ecommerce/internal/address"
	"github.com/i9team/guilherme-ecommerce/internal/cart"
	"github.com/i9team/guilherme-ecommerce/internal/orders"
	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
	"github.com/i9team/guilherme-ecommerce/pkg/masks"
)

const (
	defaultDDIPrefix = "+55"
	maxBumpOffers    = 2
)

type cartStore interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, selection map[string]string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

type catalogReader interface {
	RelatedProducts(ctx context.Context, productID uuid.UUID) ([]models.Product, error)
	ShippingOptionsFor(ctx context.Context, subtotal decimal.Decimal) ([]models.ShippingOption, error)
	CheckoutConfig(ctx context.Context) (*models.CheckoutConfig, error)
}

type addressResolver interface {
	Lookup(ctx context.Context, postalCode string) (*address.Result, error)
}

type orderSubmitter interface {
	Submit(ctx context.Context, sub orders.Submission) (*orders.PaymentDescriptor, error)
}

// View is the checkout state handed back after every operation: the draft,
// the totals derived from the live cart, and the shipping options that
// survive at the current subtotal.
type View struct {
	Step             Step                      `json:"step"`
	Mode             string                    `json:"mode"`
	Customer         Customer                  `json:"customer"`
	Address          Address                   `json:"address"`
	ShippingOptions  []models.ShippingOption   `json:"shippingOptions"`
	ShippingOptionID string                    `json:"shippingOptionId"`
	Bumps            []BumpOffer               `json:"bumps"`
	ItemCount        int                       `json:"itemCount"`
	Subtotal         decimal.Decimal           `json:"subtotal"`
	ShippingPrice    decimal.Decimal           `json:"shippingPrice"`
	Total            decimal.Decimal           `json:"total"`
	Payment          *orders.PaymentDescriptor `json:"payment,omitempty"`
}

// Service orchestrates the checkout flow for one storefront session.
type Service interface {
	Begin(ctx context.Context, sessionID string) (*View, error)
	Get(ctx context.Context, sessionID string) (*View, error)
	UpdateCustomer(ctx context.Context, sessionID string, input Customer) (*View, error)
	UpdateAddress(ctx context.Context, sessionID string, input Address) (*View, error)
	SelectShipping(ctx context.Context, sessionID, optionID string) (*View, error)
	AcceptBump(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error)
	Submit(ctx context.Context, sessionID string) (*View, error)
	Complete(ctx context.Context, sessionID string) error
}

type service struct {
	drafts    *draftRegistry
	carts     cartStore
	catalog   catalogReader
	resolver  addressResolver
	submitter orderSubmitter
	logg      *logger.Logger
}

// NewService wires the checkout orchestrator.
func NewService(carts cartStore, catalog catalogReader, resolver addressResolver, submitter orderSubmitter, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	return &service{
		drafts:    newDraftRegistry(),
		carts:     carts,
		catalog:   catalog,
		resolver:  resolver,
		submitter: submitter,
		logg:      logg,
	}, nil
}

// Begin opens a checkout draft for the session. An existing draft is
// returned untouched so a page reload does not wipe typed fields.
func (s *service) Begin(ctx context.Context, sessionID string) (*View, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		s.drafts.remove(sessionID)
		return nil, errEmptyCart()
	}

	if draft := s.drafts.get(sessionID); draft != nil {
		return s.view(ctx, draft, current)
	}

	mode := models.CheckoutModeSteps
	bumpsEnabled := true
	if cfg, err := s.catalog.CheckoutConfig(ctx); err == nil {
		if cfg.Mode != "" {
			mode = cfg.Mode
		}
		bumpsEnabled = cfg.OrderBumpsEnabled
	}

	draft := &Draft{
		SessionID: sessionID,
		Step:      StepCustomer,
		Mode:      mode,
		Customer:  Customer{DDIPrefix: defaultDDIPrefix},
	}
	if bumpsEnabled {
		draft.Bumps = s.buildBumps(ctx, current)
	}
	s.drafts.put(draft)

	return s.view(ctx, draft, current)
}

// buildBumps offers related products of the first line item, excluding
// anything already in the cart, capped at two.
func (s *service) buildBumps(ctx context.Context, current *cart.Cart) []BumpOffer {
	if current.IsEmpty() {
		return nil
	}
	related, err := s.catalog.RelatedProducts(ctx, current.Items[0].Product.ID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.bumps.unavailable")
		}
		return nil
	}

	offers := make([]BumpOffer, 0, maxBumpOffers)
	for _, p := range related {
		if current.Contains(p.ID) {
			continue
		}
		offers = append(offers, BumpOffer{Product: p})
		if len(offers) == maxBumpOffers {
			break
		}
	}
	return offers
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	draft, current, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, draft, current)
}

// UpdateCustomer stores the step-one fields, then advances once they pass
// the non-empty gate. Partial saves keep typed input without advancing.
func (s *service) UpdateCustomer(ctx context.Context, sessionID string, input Customer) (*View, error) {
	draft, current, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if input.DDIPrefix == "" {
		input.DDIPrefix = defaultDDIPrefix
	}
	draft.Customer = input
	s.drafts.put(draft)

	if missing := missingCustomerFields(draft.Customer); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer details incomplete").
			WithDetails(map[string]any{"missing": missing, "step": string(StepCustomer)})
	}

	if draft.Step == StepCustomer {
		if err := Transition(draft.Step, StepAddress); err != nil {
			return nil, err
		}
		draft.Step = StepAddress
		s.drafts.put(draft)
	}
	return s.view(ctx, draft, current)
}

func missingCustomerFields(c Customer) []string {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if masks.Unmask(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if masks.Unmask(c.TaxID) == "" {
		missing = append(missing, "taxId")
	}
	return missing
}

// UpdateAddress stores the step-two fields. Hitting the full 8-digit postal
// code fires the lookup; a hit overwrites the street fields, anything else
// leaves typed input alone.
func (s *service) UpdateAddress(ctx context.Context, sessionID string, input Address) (*View, error) {
	draft, current, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	previousDigits := masks.Unmask(draft.Address.PostalCode)
	draft.Address = input

	digits := masks.Unmask(input.PostalCode)
	if masks.PostalCodeComplete(digits) && digits != previousDigits && s.resolver != nil {
		if resolved, err := s.resolver.Lookup(ctx, digits); err == nil {
			draft.Address.Street = resolved.Street
			draft.Address.Neighborhood = resolved.Neighborhood
			draft.Address.City = resolved.City
			draft.Address.State = resolved.State
		} else if s.logg != nil {
			// Unknown and unreachable codes both degrade to manual entry.
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.address.lookup_miss")
		}
	}

	s.drafts.put(draft)
	return s.view(ctx, draft, current)
}

func missingAddressFields(a Address) []string {
	var missing []string
	if !masks.PostalCodeComplete(a.PostalCode) {
		missing = append(missing, "postalCode")
	}
	if strings.TrimSpace(a.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(a.Number) == "" {
		missing = append(missing, "number")
	}
	if strings.TrimSpace(a.Neighborhood) == "" {
		missing = append(missing, "neighborhood")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.State) == "" {
		missing = append(missing, "state")
	}
	return missing
}

// SelectShipping stores a shipping choice after checking it still survives
// at the current subtotal.
func (s *service) SelectShipping(ctx context.Context, sessionID, optionID string) (*View, error) {
	draft, current, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	options, err := s.catalog.ShippingOptionsFor(ctx, current.Subtotal())
	if err != nil {
		return nil, err
	}
	if findOption(options, optionID) == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping option not available").
			WithDetails(map[string]any{"optionId": optionID})
	}

	draft.ShippingOptionID = optionID
	s.drafts.put(draft)
	return s.view(ctx, draft, current)
}

// AcceptBump adds the offered product through the regular cart merge path
// with quantity one and the default selection of every variation axis.
func (s *service) AcceptBump(ctx context.Context, sessionID string, productID uuid.UUID) (*View, error) {
	draft, _, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var offer *BumpOffer
	for i := range draft.Bumps {
		if draft.Bumps[i].Product.ID == productID {
			offer = &draft.Bumps[i]
			break
		}
	}
	if offer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bump offer not found")
	}
	if offer.Accepted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "bump already accepted")
	}

	updated, err := s.carts.AddItem(ctx, sessionID, productID, 1, offer.Product.DefaultSelection())
	if err != nil {
		return nil, err
	}
	offer.Accepted = true
	s.drafts.put(draft)

	return s.view(ctx, draft, updated)
}

// Submit runs the final gate and hands the order to the submitter exactly
// once. Failure leaves cart, draft and step untouched.
func (s *service) Submit(ctx context.Context, sessionID string) (*View, error) {
	draft, current, err := s.liveDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.Step == StepPayment || draft.Step == StepCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already submitted")
	}

	if missing := missingCustomerFields(draft.Customer); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer details incomplete").
			WithDetails(map[string]any{"missing": missing, "step": string(StepCustomer)})
	}
	if missing := missingAddressFields(draft.Address); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address details incomplete").
			WithDetails(map[string]any{"missing": missing, "step": string(StepAddress)})
	}

	subtotal := current.Subtotal()
	options, err := s.catalog.ShippingOptionsFor(ctx, subtotal)
	if err != nil {
		return nil, err
	}
	selected := s.effectiveShipping(draft, options)
	if selected == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping option is required").
			WithDetails(map[string]any{"step": string(StepAddress)})
	}

	// Combined-form mode reaches submit straight from the customer step.
	if draft.Step == StepCustomer {
		if err := Transition(draft.Step, StepAddress); err != nil {
			return nil, err
		}
		draft.Step = StepAddress
	}
	if err := Transition(draft.Step, StepPayment); err != nil {
		return nil, err
	}

	if !s.drafts.beginSubmit(sessionID) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "submission already in progress")
	}
	defer s.drafts.endSubmit(sessionID)

	descriptor, err := s.submitter.Submit(ctx, buildSubmission(draft, current, *selected, subtotal))
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "order submission failed").
			WithDetails(map[string]any{"step": string(StepAddress)})
	}

	draft.Payment = descriptor
	draft.Step = StepPayment
	s.drafts.put(draft)

	return s.view(ctx, draft, current)
}

func buildSubmission(draft *Draft, current *cart.Cart, selected models.ShippingOption, subtotal decimal.Decimal) orders.Submission {
	sub := orders.Submission{
		CustomerName:       strings.TrimSpace(draft.Customer.Name),
		CustomerEmail:      strings.TrimSpace(draft.Customer.Email),
		CustomerPhone:      draft.Customer.DDIPrefix + masks.Unmask(draft.Customer.Phone),
		CustomerTaxID:      masks.Unmask(draft.Customer.TaxID),
		PostalCode:         masks.Unmask(draft.Address.PostalCode),
		Street:             strings.TrimSpace(draft.Address.Street),
		Number:             strings.TrimSpace(draft.Address.Number),
		Complement:         strings.TrimSpace(draft.Address.Complement),
		Neighborhood:       strings.TrimSpace(draft.Address.Neighborhood),
		City:               strings.TrimSpace(draft.Address.City),
		State:              strings.TrimSpace(draft.Address.State),
		ShippingOptionID:   selected.ID,
		ShippingOptionName: selected.Name,
		ShippingPrice:      selected.Price,
		Subtotal:           subtotal,
	}
	for _, li := range current.Items {
		sub.Items = append(sub.Items, orders.SubmissionItem{
			ProductID:   li.Product.ID,
			ProductName: li.Product.Name,
			Quantity:    li.Quantity,
			Selection:   li.Selection,
			UnitPrice:   li.UnitPrice(),
		})
	}
	return sub
}

// Complete finishes a paid-for checkout: the cart empties and the draft is
// gone, so a second call has nothing to complete.
func (s *service) Complete(ctx context.Context, sessionID string) error {
	draft := s.drafts.get(sessionID)
	if draft == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no active checkout")
	}
	if draft.Step != StepPayment || draft.Payment == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout has no submitted order")
	}
	if err := Transition(draft.Step, StepCompleted); err != nil {
		return err
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return err
	}
	s.drafts.remove(sessionID)
	return nil
}

// liveDraft loads the session's draft and cart, applying the empty-cart
// eviction rule: before payment, an emptied cart ends the checkout.
func (s *service) liveDraft(ctx context.Context, sessionID string) (*Draft, *cart.Cart, error) {
	if sessionID == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	draft := s.drafts.get(sessionID)
	if draft == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "no active checkout")
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if current.IsEmpty() && stepOrder[draft.Step] < stepOrder[StepPayment] {
		s.drafts.remove(sessionID)
		return nil, nil, errEmptyCart()
	}
	return draft, current, nil
}

func errEmptyCart() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
}

// effectiveShipping resolves the draft's selection against the surviving
// options: a vanished selection falls back to the default (first surviving)
// and the draft is corrected in place.
func (s *service) effectiveShipping(draft *Draft, options []models.ShippingOption) *models.ShippingOption {
	if len(options) == 0 {
		draft.ShippingOptionID = ""
		return nil
	}
	if selected := findOption(options, draft.ShippingOptionID); selected != nil {
		return selected
	}
	draft.ShippingOptionID = options[0].ID
	return &options[0]
}

func findOption(options []models.ShippingOption, id string) *models.ShippingOption {
	if id == "" {
		return nil
	}
	for i := range options {
		if options[i].ID == id {
			return &options[i]
		}
	}
	return nil
}

// view assembles the response snapshot, recomputing totals and shipping from
// the live cart so stale drafts can never pin an old price.
func (s *service) view(ctx context.Context, draft *Draft, current *cart.Cart) (*View, error) {
	subtotal := current.Subtotal()
	options, err := s.catalog.ShippingOptionsFor(ctx, subtotal)
	if err != nil {
		return nil, err
	}

	selected := s.effectiveShipping(draft, options)
	shippingPrice := decimal.Zero
	selectedID := ""
	if selected != nil {
		shippingPrice = selected.Price
		selectedID = selected.ID
	}

	return &View{
		Step:             draft.Step,
		Mode:             draft.Mode,
		Customer:         draft.Customer,
		Address:          draft.Address,
		ShippingOptions:  options,
		ShippingOptionID: selectedID,
		Bumps:            draft.Bumps,
		ItemCount:        current.ItemCount(),
		Subtotal:         subtotal,
		ShippingPrice:    shippingPrice,
		Total:            subtotal.Add(shippingPrice),
		Payment:          draft.Payment,
	}, nil
}
