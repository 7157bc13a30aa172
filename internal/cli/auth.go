package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/duccv/bank-web/internal/auth"
	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/model"
	"github.com/duccv/bank-web/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in, run: bankctl login")

func newLoginCmd(a *app) *cobra.Command {
	var cpf string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with CPF and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if cpf == "" {
				fmt.Fprint(cmd.OutOrStdout(), "CPF: ")
				line, err := in.ReadString('\n')
				if err != nil && line == "" {
					return err
				}
				cpf = strings.TrimSpace(line)
			}
			password, err := promptPassword(cmd, in, "Password: ")
			if err != nil {
				return err
			}

			req := model.LoginRequest{CPF: cpf, Password: password}
			if err := validation.Struct(req); err != nil {
				return describe(err)
			}

			ctx := cmd.Context()
			h, err := a.session(ctx)
			if err != nil {
				return err
			}
			tokens, err := a.public().Login(ctx, req)
			if err != nil {
				return describe(err)
			}
			if err := h.Begin(ctx, tokens, ""); err != nil {
				return err
			}

			api, _, err := a.client(ctx)
			if err != nil {
				return err
			}
			userID, err := api.UserIDByCPF(ctx, cpf)
			if err != nil {
				_ = h.Clear(ctx)
				return describe(err)
			}
			if err := h.SetUserID(ctx, userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&cpf, "cpf", "", "CPF to log in with (prompted when empty)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := h.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// promptPassword reads without echo from a terminal and a plain line otherwise.
func promptPassword(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		return string(pass), err
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// describe turns backend and validation failures into one line for the terminal.
func describe(err error) error {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, auth.ErrSessionEnded):
		return errors.New("session ended, run: bankctl login")
	case errors.As(err, &apiErr):
		return fmt.Errorf("%s (%d)", apiErr.Message, apiErr.Status)
	}
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for field, flags := range fields {
			names := make([]string, 0, len(flags))
			for flag := range flags {
				names = append(names, flag)
			}
			sort.Strings(names)
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(names, ", ")))
		}
		sort.Strings(parts)
		return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
	}
	return err
}
