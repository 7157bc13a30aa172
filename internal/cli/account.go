package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/duccv/bank-web/internal/model"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, h, err := a.client(ctx)
			if err != nil {
				return err
			}
			user, err := api.User(ctx, h.UserID())
			if err != nil {
				return describe(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Name\t%s\n", user.FullName)
			fmt.Fprintf(w, "CPF\t%s\n", user.CPF)
			fmt.Fprintf(w, "Email\t%s\n", user.Email)
			fmt.Fprintf(w, "Phone\t%s\n", user.Phone)
			fmt.Fprintf(w, "Status\t%s\n", user.Status)
			return w.Flush()
		},
	}
}

func newWalletCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show balance and recent payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, _, err := a.client(ctx)
			if err != nil {
				return err
			}
			wallet, err := api.Wallet(ctx)
			if err != nil {
				return describe(err)
			}
			sent, err := api.SentPayments(ctx)
			if err != nil {
				return describe(err)
			}
			received, err := api.ReceivedPayments(ctx)
			if err != nil {
				return describe(err)
			}

			payments := make([]model.Payment, 0, len(sent)+len(received))
			for _, p := range sent {
				p.SendOrReceive = model.PaymentSend
				payments = append(payments, p)
			}
			for _, p := range received {
				p.SendOrReceive = model.PaymentReceive
				payments = append(payments, p)
			}
			sort.SliceStable(payments, func(i, j int) bool {
				return payments[i].TimeStamp > payments[j].TimeStamp
			})
			if limit > 0 && len(payments) > limit {
				payments = payments[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Balance: %.2f\n", wallet.Balance)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tDIRECTION\tFROM\tTO\tAMOUNT")
			for _, p := range payments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n", p.TimeStamp, p.SendOrReceive, p.UserSend, p.UserReceive, p.Money)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Payments to show, 0 for all")
	return cmd
}

func newPayCmd(a *app) *cobra.Command {
	var req model.PaymentRequest
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Send money by PIX or credit card",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateInput(req); err != nil {
				return err
			}
			ctx := cmd.Context()
			api, _, err := a.client(ctx)
			if err != nil {
				return err
			}
			msg, err := api.Pay(ctx, req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Key, "key", "", "Receiver key")
	cmd.Flags().Float64Var(&req.Money, "money", 0, "Amount")
	cmd.Flags().StringVar(&req.PixOrCredit, "method", "PIX", "PIX or CREDIT")
	return cmd
}

func newNotificationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List notifications and mark them viewed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, _, err := a.client(ctx)
			if err != nil {
				return err
			}
			items, err := api.Notifications(ctx)
			if err != nil {
				return describe(err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, n := range items {
				if !n.ShowNotification {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", n.Timestamp, n.Message)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return describe(api.MarkNotificationsViewed(ctx))
		},
	}
}
