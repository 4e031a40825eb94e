package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/store"
)

// DBOptions selects the database file and configuration.
type DBOptions struct {
	Path       string
	ConfigFile string
	LogLevel   string
}

func AddDBArgs(cmd *cobra.Command, o *DBOptions) {
	cmd.PersistentFlags().StringVar(&o.Path, "db", "",
		"Path to the diary database file. Defaults to data/entries.db next to the executable.")
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"Config file. Defaults to .diary.yaml in the working or home directory.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warning or error.")
}

// Config loads the configuration and applies the flag overrides.
func (o *DBOptions) Config() (store.Config, error) {
	var (
		cfg store.Config
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = store.LoadConfigFile(o.ConfigFile)
	} else {
		cfg, err = store.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if o.Path != "" {
		return store.WithDatabasePath(cfg, o.Path)
	}
	return cfg, nil
}
