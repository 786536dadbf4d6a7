package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

// ErrNotLoggedIn is returned by commands that need a session when no token
// is stored.
var ErrNotLoggedIn = errors.New("not logged in, run `vault login` first")

var _ Client = (*App)(nil)

// App is the vault CLI. The server adapter is created after flags are parsed
// because they may override the server URL.
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo

	adapter adapter.ServerAdapter
	tokens  tokenFile

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger *logger.Logger
}

// NewApp constructs the CLI from a loaded client configuration.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidClientConfigs)
	}

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		logger:    logger,
	}, nil
}

// Run executes args against a fresh command tree. Errors are printed to the
// error stream and returned.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.logger.Err(err).Strs("args", args).Msg("command failed")
		printError(a.errOut, explain(err))
	}
	return err
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vault",
		Short:         "Client for the encrypted file vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "vault server URL")
	flags.StringVar(&a.cfg.TokenFile, "token-file", a.cfg.TokenFile, "file that keeps the session token")
	flags.DurationVar(&a.cfg.RequestTimeout, "timeout", a.cfg.RequestTimeout, "request timeout")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.meCommand(),
		a.uploadCommand(),
		a.downloadCommand(),
		a.listCommand(),
		a.removeCommand(),
		a.versionCommand(),
	)

	return root
}

// connect validates the flag-adjusted config, builds the adapter and
// restores the stored session token.
func (a *App) connect() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(*a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.adapter = serverAdapter
	a.tokens = tokenFile{path: a.cfg.TokenFile}

	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.adapter.SetToken(token)

	return nil
}

func (a *App) requireSession() error {
	if a.adapter.Token() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

// readPassword returns the flag value or reads one line from the input.
func readPassword(cmd *cobra.Command, fromFlag string) (string, error) {
	if fromFlag != "" {
		return fromFlag, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// explain adds a hint to errors the user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, adapter.ErrTokenExpired), errors.Is(err, adapter.ErrTokenInvalid):
		return fmt.Errorf("%w (run `vault login` again)", err)
	default:
		return err
	}
}
