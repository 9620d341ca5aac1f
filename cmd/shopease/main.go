// Command shopease is the terminal front end of the ShopEase client. It
// only dispatches user intents into the state layer and prints what the
// layer exposes.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shopease/go_shop/internal/api"
	"github.com/shopease/go_shop/internal/cart"
	"github.com/shopease/go_shop/internal/recommend"
	"github.com/shopease/go_shop/internal/session"
	"github.com/shopease/go_shop/pkg/logger"
)

type app struct {
	logger     *zap.Logger
	client     *api.Client
	store      session.Store
	engine     *cart.Engine
	aggregator *recommend.Aggregator
}

var (
	verbose bool
	baseURL string
	dataDir string

	shop *app
)

var rootCmd = &cobra.Command{
	Use:           "shopease",
	Short:         "ShopEase product catalog client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(verbose)
		if err != nil {
			return err
		}

		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			dataDir = filepath.Join(home, ".shopease")
		}
		store, err := session.OpenBadger(dataDir)
		if err != nil {
			return err
		}

		client := api.NewClient(baseURL, api.WithLogger(l))
		shop = &app{
			logger:     l,
			client:     client,
			store:      store,
			engine:     cart.NewEngine(client, store, l),
			aggregator: recommend.NewAggregator(client, store, l),
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shop != nil {
			_ = shop.store.Close()
			_ = shop.logger.Sync()
		}
	},
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", getEnv("SHOPEASE_API_URL", "http://localhost:5000"), "backend origin")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", getEnv("SHOPEASE_DATA_DIR", ""), "session store directory (default ~/.shopease)")

	rootCmd.AddCommand(
		loginCmd, signupCmd, logoutCmd,
		cartCmd, homeCmd, searchCmd,
		brandsCmd, productsCmd, reviewCmd, adminCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
