// Package repository defines the transaction boundary shared by all
// persistence ports.
package repository

import (
	"context"

	"github.com/propvest/propvest/pkg/repository/payment"
	"github.com/propvest/propvest/pkg/repository/profile"
	"github.com/propvest/propvest/pkg/repository/scheme"
	"github.com/propvest/propvest/pkg/repository/unit"
)

// UnitOfWork runs work in a transaction boundary and hands out repositories
// bound to the same session, so a purchase finalization writes its unit and
// first payment atomically. If the function returns an error the transaction
// is rolled back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Schemes() scheme.Repository
	Profiles() profile.Repository
	Units() unit.Repository
	Payments() payment.Repository
}
