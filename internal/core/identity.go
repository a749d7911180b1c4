package core

import (
	"context"
	"fmt"
	"strings"

	"patient-companion/pkg"
)

// Resolver maps inbound phone numbers to caller identities, creating a
// record on first contact. It holds no caller state beyond a single
// request's lifetime.
type Resolver struct {
	gw Gateway
}

// NewResolver constructs a Resolver over the given gateway.
func NewResolver(gw Gateway) *Resolver {
	return &Resolver{gw: gw}
}

// Resolve determines who is calling. An unseen number gets exactly one
// caller record with the placeholder name and IsNew set; a known number
// returns the stored name without writing. The find-or-create is atomic at
// the store, so two simultaneous first contacts for one number cannot
// produce duplicate records.
func (r *Resolver) Resolve(ctx context.Context, phoneNumber string) (pkg.ResolvedIdentity, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return pkg.ResolvedIdentity{}, fmt.Errorf("empty caller id: %w", ErrValidation)
	}
	caller, created, err := r.gw.EnsureCaller(ctx, phoneNumber)
	if err != nil {
		return pkg.ResolvedIdentity{}, fmt.Errorf("resolve caller: %w", err)
	}
	return pkg.ResolvedIdentity{
		Name:        caller.Name,
		PhoneNumber: caller.PhoneNumber,
		IsNew:       created,
	}, nil
}

// UpdateName stores the name the caller introduced themselves with.
func (r *Resolver) UpdateName(ctx context.Context, phoneNumber, name string) error {
	if strings.TrimSpace(phoneNumber) == "" {
		return fmt.Errorf("empty caller id: %w", ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty name: %w", ErrValidation)
	}
	if err := r.gw.RenameCaller(ctx, phoneNumber, name); err != nil {
		return fmt.Errorf("rename caller: %w", err)
	}
	return nil
}
