// Package repository implements the persistence ports on GORM/Postgres.
package repository

import (
	"context"

	infrapayment "github.com/propvest/propvest/infra/repository/payment"
	infraprofile "github.com/propvest/propvest/infra/repository/profile"
	infrascheme "github.com/propvest/propvest/infra/repository/scheme"
	infraunit "github.com/propvest/propvest/infra/repository/unit"
	"github.com/propvest/propvest/pkg/repository"
	repopayment "github.com/propvest/propvest/pkg/repository/payment"
	repoprofile "github.com/propvest/propvest/pkg/repository/profile"
	reposcheme "github.com/propvest/propvest/pkg/repository/scheme"
	repounit "github.com/propvest/propvest/pkg/repository/unit"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do are bound to the
// transaction session, so the purchase finalization's unit and payment rows
// commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// session returns the transaction when inside Do, the root connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do implements repository.UnitOfWork.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// Schemes implements repository.UnitOfWork.
func (u *UoW) Schemes() reposcheme.Repository {
	return infrascheme.New(u.session())
}

// Profiles implements repository.UnitOfWork.
func (u *UoW) Profiles() repoprofile.Repository {
	return infraprofile.New(u.session())
}

// Units implements repository.UnitOfWork.
func (u *UoW) Units() repounit.Repository {
	return infraunit.New(u.session())
}

// Payments implements repository.UnitOfWork.
func (u *UoW) Payments() repopayment.Repository {
	return infrapayment.New(u.session())
}
