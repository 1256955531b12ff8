package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/creditline/internal/model"
)

// Version is reported by the version command
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "creditline",
	Short: "Creditline - attribution credit lines from RDF metadata",
	Long: `Creditline reads RDF attribution metadata (RDFa in HTML, or N-Triples)
and prints a human-readable credit line for the described work:

  Sunset by Alice (CC BY-SA 3.0 Unported).

Title, author and license are taken from Dublin Core, Creative Commons,
XHTML, Open Graph and Flickr vocabularies. Sources (dc:source) are
followed recursively and listed below the main line.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// Execute runs the root command with ctx as the command context
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of creditline.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "creditline %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.creditline/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// setupLogger attaches a logger to the command context. Debug level is
// selected by --verbose or output.verbose in the config.
func setupLogger(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if verbose || viper.GetBool("output.verbose") {
		level = log.DebugLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, newLogger(cmd.ErrOrStderr(), level)))
	return nil
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".creditline"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CREDITLINE_RENDER_FORMAT overrides render.format, and so on
	viper.SetEnvPrefix("CREDITLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables are
// picked up by AutomaticEnv.
func setDefaults(d *model.Config) {
	viper.SetDefault("extract.subject", d.Extract.Subject)
	viper.SetDefault("extract.base_uri", d.Extract.BaseURI)
	viper.SetDefault("extract.max_depth", d.Extract.MaxDepth)
	viper.SetDefault("extract.cycle_guard", d.Extract.CycleGuard)

	viper.SetDefault("render.format", d.Render.Format)
	viper.SetDefault("render.source_depth", d.Render.SourceDepth)
	viper.SetDefault("render.locale", d.Render.Locale)
	viper.SetDefault("render.catalog", d.Render.Catalog)
	viper.SetDefault("render.show_urls", d.Render.ShowURLs)

	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)

	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("input.max_bytes", d.Input.MaxBytes)
	viper.SetDefault("output.verbose", d.Output.Verbose)
}

// loadConfig returns the defaults overlaid with the config file and
// environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
