// Package main implements the cidgate CLI entrypoint: a small
// spf13/cobra command tree (`cidgate serve`, `cidgate keygen`, `cidgate
// version`) grounded on the teacher's cmd/cli/root.go, but without the
// teacher's fx container or UCAN/wallet/PDP command families that have
// no analog in this gateway's domain.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cidgate/cidgate/pkg/build"
)

var log = logging.Logger("cmd")

var (
	cfgFile  string
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "cidgate",
		Short: "cidgate is a content-addressed routing and ingestion gateway",
		Long: fmt.Sprintf(`cidgate maps content identifiers to concrete fetch locations across
object-store, peer-blob, and HTTP-gateway backends, and ingests new
content by computing its CID and replicating it to writable backends.
(Version: %s)`, build.Version),
		Version: build.Version,
	}
)

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logging level")

	rootCmd.PersistentFlags().String("data-dir", defaultDataDir(), "gateway repo data directory")
	cobra.CheckErr(viper.BindPFlag("repo.data_dir", rootCmd.PersistentFlags().Lookup("data-dir")))
	cobra.CheckErr(viper.BindEnv("repo.data_dir", "CIDGATE_DATA_DIR"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command, exiting non-zero on any error per §6's
// exit-code contract.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cidgate"
	}
	return home + string(os.PathSeparator) + ".cidgate"
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("CIDGATE")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
		return
	}
	viper.SetConfigName("cidgate")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	// a missing config file is not fatal: flags/env/defaults may be enough.
	_ = viper.ReadInConfig()
}

func initLogging() {
	if logLevel != "" {
		ll, err := logging.LevelFromString(logLevel)
		cobra.CheckErr(err)
		logging.SetAllLoggers(ll)
		return
	}
	logging.SetAllLoggers(logging.LevelInfo)
}
