package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/skilltree"
	"github.com/aretw0/skilltree/internal/logging"
	redisAdapter "github.com/aretw0/skilltree/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skilltree",
	Short: "skilltree validates, inspects and serves RPG skill trees",
	Long: `skilltree loads declaratively authored skill trees from a directory,
validates their structure and runs them through an admin server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the skill documents")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for cooldowns, skill records and caster locks (memory if empty)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, format), nil
}

// skillsDir resolves the skill directory from --dir or the first argument.
func skillsDir(cmd *cobra.Command, args []string) string {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	return dir
}

// newEngine builds an engine from the persistent flags and loads every skill.
func newEngine(cmd *cobra.Command, dir string, opts ...skilltree.Option) (*skilltree.Engine, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	opts = append([]skilltree.Option{skilltree.WithLogger(logger)}, opts...)

	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		client := redisAdapter.NewClient(addr, os.Getenv("SKILLTREE_REDIS_PASSWORD"), 0)
		if err := client.Ping(cmd.Context()).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
		}
		opts = append(opts,
			skilltree.WithCooldownStore(redisAdapter.NewCooldowns(client)),
			skilltree.WithRecords(redisAdapter.NewRecords(client)),
			skilltree.WithCasterLocker(redisAdapter.NewLocker(client)),
		)
	}

	eng, err := skilltree.New(dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init engine: %w", err)
	}
	if _, err := eng.Reload(cmd.Context()); err != nil {
		return nil, err
	}
	return eng, nil
}
