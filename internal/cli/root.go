// Package cli implements bankctl, a terminal client of the bank backend
// services that keeps its session in a file under the user's home.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/internal/auth"
	"github.com/duccv/bank-web/internal/backend"
	"github.com/duccv/bank-web/internal/session"
	"github.com/spf13/cobra"
)

// sessionID names the single session file of the CLI.
const sessionID = "session"

type app struct {
	configPath string
	home       string

	env   *config.Env
	store session.Store
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bankctl",
		Short:         "Bank client for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.yaml (defaults and ENV_ variables when empty)")
	root.PersistentFlags().StringVar(&a.home, "home", "", "Directory holding the session file (default ~/.bankctl)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newWalletCmd(a),
		newPayCmd(a),
		newNotificationsCmd(a),
		newLoanCmd(a),
	)
	return root
}

func (a *app) init() error {
	var err error
	if a.configPath != "" {
		a.env, err = config.Load(a.configPath)
	} else {
		a.env, err = config.Default()
	}
	if err != nil {
		return err
	}

	if a.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		a.home = filepath.Join(home, ".bankctl")
	}
	if err := os.MkdirAll(a.home, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", a.home, err)
	}
	a.store = session.NewFileStore(a.home)
	return nil
}

func (a *app) timeout() time.Duration {
	if a.env.BackendConfig.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.env.BackendConfig.Timeout) * time.Second
}

// session opens the CLI session file.
func (a *app) session(ctx context.Context) (*session.Handle, error) {
	return session.Open(ctx, a.store, sessionID)
}

func (a *app) public() *backend.Client {
	return backend.New(backend.EndpointsFromConfig(a.env.BackendConfig), nil)
}

// client returns a backend client authenticated as the stored session.
// It fails fast when nobody is logged in.
func (a *app) client(ctx context.Context) (*backend.Client, *session.Handle, error) {
	h, err := a.session(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !h.HasAccessToken() {
		return nil, nil, errNotLoggedIn
	}
	interceptor := auth.New(a.public())
	return backend.New(backend.EndpointsFromConfig(a.env.BackendConfig), interceptor.Client(h, a.timeout())), h, nil
}
