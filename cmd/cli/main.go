package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/propvest/propvest/infra"
	infrarepo "github.com/propvest/propvest/infra/repository"
	"github.com/propvest/propvest/pkg/config"
	domainscheme "github.com/propvest/propvest/pkg/domain/scheme"
	"github.com/propvest/propvest/pkg/dto"
	"github.com/propvest/propvest/pkg/service/scheme"
)

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println("Commands:")
		fmt.Println("  seed-installment <project_id> <area_sqft> <installments> <monthly_amount>")
		fmt.Println("  seed-single <project_id> <area_sqft> <advance> <rental_start_month> <monthly_rental>")
		fmt.Println("  list <project_id>")
		fmt.Println("  plan <scheme_id> <units>")
		return
	}
	cmd := os.Args[1]
	svc, err := newSchemeService()
	if err != nil {
		fmt.Println("Failed to initialize:", err)
		return
	}
	ctx := context.Background()
	switch cmd {
	case "seed-installment":
		if argsLen < 6 {
			fmt.Println("Usage: seed-installment <project_id> <area_sqft> <installments> <monthly_amount>")
			return
		}
		area, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil {
			fmt.Println("Invalid area:", err)
			return
		}
		installments, err := strconv.Atoi(os.Args[4])
		if err != nil {
			fmt.Println("Invalid installment count:", err)
			return
		}
		monthly, err := strconv.ParseInt(os.Args[5], 10, 64)
		if err != nil {
			fmt.Println("Invalid monthly amount:", err)
			return
		}
		create := dto.SchemeCreate{
			ID:                 uuid.New(),
			ProjectID:          os.Args[2],
			SchemeType:         string(domainscheme.TypeInstallment),
			AreaSqft:           area,
			TotalInstallments:  &installments,
			MonthlyInstallment: &monthly,
		}
		if err := svc.Seed(ctx, create); err != nil {
			fmt.Println("Error seeding scheme:", err)
			return
		}
		fmt.Printf("Scheme created: ID=%s, Project=%s\n", create.ID, create.ProjectID)
	case "seed-single":
		if argsLen < 7 {
			fmt.Println("Usage: seed-single <project_id> <area_sqft> <advance> <rental_start_month> <monthly_rental>")
			return
		}
		area, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil {
			fmt.Println("Invalid area:", err)
			return
		}
		advance, err := strconv.ParseInt(os.Args[4], 10, 64)
		if err != nil {
			fmt.Println("Invalid advance:", err)
			return
		}
		rentalStart, err := strconv.Atoi(os.Args[5])
		if err != nil {
			fmt.Println("Invalid rental start month:", err)
			return
		}
		rental, err := strconv.ParseInt(os.Args[6], 10, 64)
		if err != nil {
			fmt.Println("Invalid monthly rental:", err)
			return
		}
		create := dto.SchemeCreate{
			ID:               uuid.New(),
			ProjectID:        os.Args[2],
			SchemeType:       string(domainscheme.TypeSinglePayment),
			AreaSqft:         area,
			BookingAdvance:   &advance,
			RentalStartMonth: &rentalStart,
			MonthlyRental:    &rental,
		}
		if err := svc.Seed(ctx, create); err != nil {
			fmt.Println("Error seeding scheme:", err)
			return
		}
		fmt.Printf("Scheme created: ID=%s, Project=%s\n", create.ID, create.ProjectID)
	case "list":
		if argsLen < 3 {
			fmt.Println("Usage: list <project_id>")
			return
		}
		rows, err := svc.ListByProject(ctx, os.Args[2])
		if err != nil {
			fmt.Println("Error listing schemes:", err)
			return
		}
		for _, row := range rows {
			fmt.Printf("%s  type=%s  area=%.1f sqft\n", row.ID, row.SchemeType, row.AreaSqft)
		}
	case "plan":
		if argsLen < 4 {
			fmt.Println("Usage: plan <scheme_id> <units>")
			return
		}
		schemeID, err := uuid.Parse(os.Args[2])
		if err != nil {
			fmt.Println("Invalid scheme id:", err)
			return
		}
		units, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Println("Invalid units:", err)
			return
		}
		plan, err := svc.PreviewPlan(ctx, schemeID, units)
		if err != nil {
			fmt.Println("Error deriving plan:", err)
			return
		}
		fmt.Printf("Plan: type=%s price=%d min_payment=%d monthly_rental=%d\n",
			plan.Type, plan.Price, plan.MinPayment, plan.MonthlyRental)
	default:
		fmt.Println("Unknown command:", cmd)
	}
}

func newSchemeService() (*scheme.Service, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, err
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}
	if err := infrarepo.AutoMigrate(db); err != nil {
		return nil, err
	}
	uow := infrarepo.NewUoW(db)
	return scheme.New(uow, domainscheme.DefaultPlanConfig(), slog.Default()), nil
}
