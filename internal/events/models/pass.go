package models

import (
	"strings"
	"time"

	id "lankaconnect/pkg/domain"
	dErrors "lankaconnect/pkg/domain-errors"
	"lankaconnect/pkg/money"
)

// Pass is a purchasable ticket tier with its own price and inventory.
//
// Inventory invariant: Available + Reserved <= Total at all times, and none of
// the three is ever negative. Sold units are Total - Available - Reserved.
// Any mutation that would break the invariant fails before touching state.
type Pass struct {
	ID        id.PassID   `json:"id"`
	EventID   id.EventID  `json:"event_id"`
	Name      string      `json:"name"`
	Price     money.Money `json:"price"`
	Total     int         `json:"total"`
	Available int         `json:"available"`
	Reserved  int         `json:"reserved"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewPass validates and builds a pass with the full quantity available.
func NewPass(eventID id.EventID, name string, price money.Money, total int, now time.Time) (*Pass, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pass name is required")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pass name must be 128 characters or less")
	}
	if total <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "pass quantity must be greater than 0")
	}
	return &Pass{
		ID:        id.NewPassID(),
		EventID:   eventID,
		Name:      name,
		Price:     price,
		Total:     total,
		Available: total,
		Reserved:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Sold returns the number of units sold outright.
func (p *Pass) Sold() int { return p.Total - p.Available - p.Reserved }

// HasOutstandingUnits reports whether any units are reserved or sold.
// Passes with outstanding units cannot be removed from their event.
func (p *Pass) HasOutstandingUnits() bool {
	return p.Reserved > 0 || p.Sold() > 0
}

// Reserve moves qty units from available to reserved. Fails atomically when
// fewer than qty units are available.
func (p *Pass) Reserve(qty int, now time.Time) error {
	if qty <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	if qty > p.Available {
		return dErrors.Newf(dErrors.CodeCapacityExceeded,
			"only %d units of pass %q available", p.Available, p.Name)
	}
	p.Available -= qty
	p.Reserved += qty
	p.UpdatedAt = now
	return nil
}

// Release returns qty reserved units to the available pool (reservation
// cancelled or expired).
func (p *Pass) Release(qty int, now time.Time) error {
	if qty <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	if qty > p.Reserved {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot release %d units of pass %q, only %d reserved", qty, p.Name, p.Reserved)
	}
	p.Reserved -= qty
	p.Available += qty
	p.UpdatedAt = now
	return nil
}

// ConfirmSale converts qty reserved units into sold units.
func (p *Pass) ConfirmSale(qty int, now time.Time) error {
	if qty <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than 0")
	}
	if qty > p.Reserved {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"cannot confirm %d units of pass %q, only %d reserved", qty, p.Name, p.Reserved)
	}
	p.Reserved -= qty
	p.UpdatedAt = now
	return nil
}
