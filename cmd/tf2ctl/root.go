// cmd/tf2ctl/root.go
// Root command for the `tf2ctl` CLI. It wires common flags, global
// initialisation (logger, config file) and adds the publish/lookup/watch/
// token sub-commands defined in sibling files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/pkg/version"
)

var (
	cfgFile    string
	logJSON    bool
	serverAddr string
	authToken  string
	insecure   bool

	rootCmd = &cobra.Command{
		Use:   "tf2ctl",
		Short: "tf2ctl – publish, look up and watch robot transforms",
		Long:  `tf2ctl talks to a tf2 buffer daemon to publish transform samples and resolve chained, time-interpolated lookups.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logging.Initialised() {
				return nil
			}
			return initLogger()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file (YAML/TOML/JSON)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Enable JSON log output (default is human-friendly console)")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:4317", "tf2 buffer daemon gRPC address")
	rootCmd.PersistentFlags().StringVar(&authToken, "auth-token", "", "Bearer token sent with every request (optional)")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", true, "Dial the daemon without TLS")

	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTokenCmd())
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tf2ctl"))
		}
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TF2CTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Sugar().Infof("Using config file: %s", viper.ConfigFileUsed())
	}
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if !logJSON {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zap.TimeEncoder(func(t time.Time, enc zap.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.RFC3339))
	})

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	logging.Set(logger)
	logging.Sugar().Infow("tf2ctl starting", "go_version", runtime.Version(), "version", version.String())
	return nil
}
