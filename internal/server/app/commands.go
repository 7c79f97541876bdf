// Package app implements the quotesync-server command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/quotesync/internal/config"
	"github.com/iudanet/quotesync/internal/server/jwt"
	"github.com/iudanet/quotesync/internal/validation"
)

// ErrNoSecret возвращается, когда для выпуска токена не задан jwt_secret
var ErrNoSecret = errors.New("jwt_secret is not configured")

// BuildInfo version information set via ldflags during build
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type root struct {
	v          *viper.Viper
	out        io.Writer
	logOut     io.Writer
	info       BuildInfo
	configFile string
}

// Execute runs the quotesync-server command tree
func Execute(ctx context.Context, info BuildInfo) error {
	return newRootCmd(info, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(info BuildInfo, out, logOut io.Writer) *cobra.Command {
	r := &root{
		v:      config.NewServerViper(),
		out:    out,
		logOut: logOut,
		info:   info,
	}

	cmd := &cobra.Command{
		Use:           "quotesync-server",
		Short:         "Remote replica for quotesync clients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(logOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&r.configFile, "config", "", "Path to configuration file (YAML)")
	flags.String("db", "", "Path to server database")
	flags.String("jwt-secret", "", "Secret for signing bearer tokens; empty disables auth")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	bindFlag(r.v, "db_path", flags.Lookup("db"))
	bindFlag(r.v, "jwt_secret", flags.Lookup("jwt-secret"))
	bindFlag(r.v, "log.level", flags.Lookup("log-level"))

	cmd.AddCommand(
		r.serveCmd(),
		r.tokenCmd(),
		r.versionCmd(),
	)

	return cmd
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}

func (r *root) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer(r.v, r.configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, r.info.Version, r.logOut)
		},
	}
	cmd.Flags().String("address", "", "Address to listen on (default \":8080\")")
	bindFlag(r.v, "address", cmd.Flags().Lookup("address"))
	return cmd
}

func (r *root) tokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer(r.v, r.configFile)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return ErrNoSecret
			}
			if err := validation.ValidateSubject(subject); err != nil {
				return err
			}

			token, expiresAt, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL).Issue(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(r.out, token)
			fmt.Fprintf(r.out, "# subject %s, expires %s\n", subject, expiresAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Client name recorded in the token")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func (r *root) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(r.out, "quotesync-server\n")
			fmt.Fprintf(r.out, "Version:    %s\n", r.info.Version)
			fmt.Fprintf(r.out, "Build Date: %s\n", r.info.BuildDate)
			fmt.Fprintf(r.out, "Git Commit: %s\n", r.info.GitCommit)
		},
	}
}
