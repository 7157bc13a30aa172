package cli

import (
	"fmt"

	"github.com/duccv/bank-web/internal/loan"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newLoanCmd(a *app) *cobra.Command {
	var value, income string
	var term int
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Simulate a loan at 8% a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid --value: %w", err)
			}
			inc, err := decimal.NewFromString(income)
			if err != nil {
				return fmt.Errorf("invalid --income: %w", err)
			}
			if err := validateInput(model.LoanRequest{Value: v, Term: term, MonthlyIncome: inc}); err != nil {
				return err
			}

			sim, err := loan.Simulate(v, term, inc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monthly installment: %s\n", sim.MonthlyInstallment.StringFixed(2))
			fmt.Fprintf(out, "Total payment:       %s\n", sim.TotalPayment.StringFixed(2))
			fmt.Fprintln(out, sim.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "Amount borrowed")
	cmd.Flags().IntVar(&term, "term", 12, "Months")
	cmd.Flags().StringVar(&income, "income", "", "Monthly income")
	return cmd
}

func validateInput(v any) error {
	if err := validation.Struct(v); err != nil {
		return describe(err)
	}
	return nil
}
