// Package cli implements the quotesync command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/quotesync/internal/client/iocli"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/config"
	"github.com/iudanet/quotesync/internal/logging"
	"github.com/iudanet/quotesync/internal/merge"
)

// skipSetup помечает команды, которым не нужна база и сервисы
const skipSetup = "skip-setup"

// BuildInfo version information set via ldflags during build
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Builder создает Cli из загруженной конфигурации
type Builder func(ctx context.Context, cfg *config.ClientConfig, stdio iocli.IO) (*Cli, func() error, error)

// root держит состояние между PersistentPreRunE и командами
type root struct {
	v          *viper.Viper
	stdio      iocli.IO
	builder    Builder
	cli        *Cli
	cleanup    func() error
	configFile string
}

// Execute runs the quotesync command tree and releases the local database
// even when the command fails.
func Execute(ctx context.Context, info BuildInfo) error {
	cmd, r := newRootCmd(info, iocli.NewStdio(), defaultBuilder(os.Stderr))
	return r.execute(ctx, cmd)
}

func defaultBuilder(logOut io.Writer) Builder {
	return func(ctx context.Context, cfg *config.ClientConfig, stdio iocli.IO) (*Cli, func() error, error) {
		logger, closer, err := logging.New(cfg.Log, logOut)
		if err != nil {
			return nil, nil, err
		}

		c, cleanup, err := Build(ctx, cfg, stdio, logger)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}

		return c, func() error {
			err := cleanup()
			_ = closer.Close()
			return err
		}, nil
	}
}

func newRootCmd(info BuildInfo, stdio iocli.IO, builder Builder) (*cobra.Command, *root) {
	r := &root{
		v:       config.NewClientViper(),
		stdio:   stdio,
		builder: builder,
	}

	cmd := &cobra.Command{
		Use:           "quotesync",
		Short:         "Local-first quote collection synchronized with a remote server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" || cmd.Name() == "help" {
				return nil
			}
			return r.setup(cmd.Context())
		},
	}
	cmd.SetOut(stdio)
	cmd.SetErr(os.Stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&r.configFile, "config", "", "Path to configuration file (YAML)")
	flags.String("server", "", "Server URL")
	flags.String("db", "", "Path to local database")
	flags.String("token", "", "Bearer token for the server")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	bindFlag(r.v, "server_url", flags.Lookup("server"))
	bindFlag(r.v, "db_path", flags.Lookup("db"))
	bindFlag(r.v, "token", flags.Lookup("token"))
	bindFlag(r.v, "log.level", flags.Lookup("log-level"))

	cmd.AddCommand(
		r.addCmd(),
		r.editCmd(),
		r.removeCmd(),
		r.showCmd(),
		r.listCmd(),
		r.categoriesCmd(),
		r.randomCmd(),
		r.pushCmd(),
		r.syncCmd(),
		r.conflictsCmd(),
		r.statusCmd(),
		r.daemonCmd(),
		versionCmd(info, stdio),
	)

	return cmd, r
}

// bindFlag связывает флаг с ключом конфигурации; флаг важнее окружения и файла
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	// Ошибка возможна только при опечатке в имени флага
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}

func (r *root) execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if closeErr := r.close(); err == nil {
		err = closeErr
	}
	return err
}

func (r *root) setup(ctx context.Context) error {
	cfg, err := config.LoadClient(r.v, r.configFile)
	if err != nil {
		return err
	}

	c, cleanup, err := r.builder(ctx, cfg, r.stdio)
	if err != nil {
		return err
	}
	r.cli, r.cleanup = c, cleanup
	return nil
}

func (r *root) close() error {
	if r.cleanup == nil {
		return nil
	}
	cleanup := r.cleanup
	r.cleanup = nil
	return cleanup()
}

func (r *root) addCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a new quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.cli.runAdd(cmd.Context(), args[0], category)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Quote category (default \"Uncategorized\")")
	return cmd
}

func (r *root) editCmd() *cobra.Command {
	var text, category string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the text or category of a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.cli.runEdit(cmd.Context(), args[0], text, category)
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "New quote text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	return cmd
}

func (r *root) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a quote from the local replica",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.cli.runRemove(cmd.Context(), args[0])
		},
	}
}

func (r *root) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.cli.runShow(cmd.Context(), args[0])
		},
	}
}

func (r *root) listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quotes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runList(cmd.Context(), category)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only quotes in this category")
	return cmd
}

func (r *root) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runCategories(cmd.Context())
		},
	}
}

func (r *root) randomCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runRandom(cmd.Context(), category)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Pick from this category only")
	return cmd
}

func (r *root) pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <id>",
		Short: "Send one local quote to the server now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.cli.runPush(cmd.Context(), args[0])
		},
	}
}

func (r *root) syncCmd() *cobra.Command {
	var policyName string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one synchronization pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy := r.cli.cfg.MergePolicy()
			if policyName != "" {
				p, err := merge.ParsePolicy(policyName)
				if err != nil {
					return err
				}
				policy = p
			}
			return r.cli.runSync(cmd.Context(), policy)
		},
	}
	cmd.Flags().StringVarP(&policyName, "policy", "p", "", "Merge policy for this pass (auto, manual)")
	return cmd
}

func (r *root) conflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Review and resolve pending conflicts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending conflicts",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return r.cli.runConflictsList()
		},
	}

	var keep string
	resolve := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve one conflict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := parseKeep(keep)
			if err != nil {
				return err
			}
			return r.cli.runResolve(cmd.Context(), args[0], choice)
		},
	}
	resolve.Flags().StringVarP(&keep, "keep", "k", "", "Version to keep (local, remote)")
	_ = resolve.MarkFlagRequired("keep")

	var keepAll string
	resolveAll := &cobra.Command{
		Use:   "resolve-all",
		Short: "Resolve every conflict with the same choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			choice, err := parseKeep(keepAll)
			if err != nil {
				return err
			}
			return r.cli.runResolveAll(cmd.Context(), choice)
		},
	}
	resolveAll.Flags().StringVarP(&keepAll, "keep", "k", "", "Version to keep (local, remote)")
	_ = resolveAll.MarkFlagRequired("keep")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard all pending conflicts without touching records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runClear(cmd.Context())
		},
	}

	interactive := &cobra.Command{
		Use:   "interactive",
		Short: "Resolve conflicts one by one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !r.cli.io.IsInteractive() {
				return fmt.Errorf("interactive mode requires a terminal, use 'conflicts resolve' instead")
			}
			return r.cli.runInteractive(cmd.Context())
		},
	}

	cmd.AddCommand(list, resolve, resolveAll, clearCmd, interactive)
	return cmd
}

func (r *root) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show last sync time and pending conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runStatus(cmd.Context())
		},
	}
}

func (r *root) daemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Synchronize periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.cli.runDaemon(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.Duration("interval", config.DefaultSyncInterval, "Sync interval")
	flags.String("policy", "", "Merge policy (auto, manual)")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	bindFlag(r.v, "sync_interval", flags.Lookup("interval"))
	bindFlag(r.v, "policy", flags.Lookup("policy"))
	bindFlag(r.v, "metrics_addr", flags.Lookup("metrics-addr"))
	return cmd
}

func versionCmd(info BuildInfo, stdio iocli.IO) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			stdio.Printf("quotesync\n")
			stdio.Printf("Version:    %s\n", info.Version)
			stdio.Printf("Build Date: %s\n", info.BuildDate)
			stdio.Printf("Git Commit: %s\n", info.GitCommit)
			return nil
		},
	}
}

func parseKeep(keep string) (sync.Choice, error) {
	choice, err := sync.ParseChoice(keep)
	if err != nil {
		return 0, fmt.Errorf("--keep must be local or remote: %w", err)
	}
	return choice, nil
}
