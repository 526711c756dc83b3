package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/container"
	generativeAI "github.com/FACorreiaa/go-travel-ai-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func credentialsPath() (string, error) {
	cfg, _, err := bootstrap(os.Stderr)
	if err != nil {
		return "", err
	}
	if cfg.Providers.CredentialsFile != "" {
		return cfg.Providers.CredentialsFile, nil
	}
	return generativeAI.DefaultCredentialsPath(), nil
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage provider API keys",
	}

	setCmd := &cobra.Command{
		Use:   "set <provider> <key>",
		Short: "Store an API key override; an empty key clears it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := types.ParseProvider(args[0], "")
			if err != nil || provider == "" {
				return fmt.Errorf("%w: unknown provider %q", types.ErrInvalidInput, args[0])
			}
			path, err := credentialsPath()
			if err != nil {
				return err
			}
			creds, err := generativeAI.LoadOverrides(path)
			if err != nil {
				return err
			}
			if err := creds.Set(provider, args[1]); err != nil {
				return err
			}
			if err := generativeAI.SaveOverrides(path, creds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s key saved to %s\n", provider.DisplayName(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show which keys are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := credentialsPath()
			if err != nil {
				return err
			}
			creds, err := generativeAI.ResolveCredentials(path, os.Getenv)
			if err != nil {
				return err
			}
			for _, p := range types.Providers {
				fmt.Fprintf(cmd.OutOrStdout(), "%-7s %s\n", p, generativeAI.Mask(creds.Key(p)))
			}
			return nil
		},
	}

	cmd.AddCommand(setCmd, showCmd)
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired rows from the postgres cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, _ types.ProviderID) (any, error) {
				if c.PostgresCache == nil {
					return nil, fmt.Errorf("purge needs cache.backend=postgres, got %q", c.Config.Cache.Backend)
				}
				n, err := c.PostgresCache.PurgeExpired(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]int64{"purged": n}, nil
			})
		},
	}

	cmd.AddCommand(purgeCmd)
	return cmd
}
