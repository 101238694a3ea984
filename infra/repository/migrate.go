package repository

import (
	infrapayment "github.com/propvest/propvest/infra/repository/payment"
	infraprofile "github.com/propvest/propvest/infra/repository/profile"
	infrascheme "github.com/propvest/propvest/infra/repository/scheme"
	infraunit "github.com/propvest/propvest/infra/repository/unit"
	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date for all models owned by this
// service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&infrascheme.Scheme{},
		&infraprofile.Profile{},
		&infraunit.Unit{},
		&infrapayment.Payment{},
	)
}
