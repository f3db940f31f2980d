package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/erikbos/showgraph/collection"
	"github.com/erikbos/showgraph/imageresize"
)

const configName = "showgraph"

type cfgMain struct {
	Listen       cfgListen `mapstructure:"listen"`
	Cachedir     string    `mapstructure:"cachedir"`
	Logfile      string    `mapstructure:"logfile"`
	BaseURL      string    `mapstructure:"baseurl"`
	SiteName     string    `mapstructure:"sitename"`
	Locale       string    `mapstructure:"locale"`
	DefaultImage string    `mapstructure:"defaultimage"`
	// ScanInterval is the time between two rescans of the collections.
	ScanInterval time.Duration           `mapstructure:"scaninterval"`
	Image        cfgImage                `mapstructure:"image"`
	Collections  []collection.Collection `mapstructure:"collections"`
}

type cfgListen struct {
	Port    int    `mapstructure:"port"`
	TlsCert string `mapstructure:"tlscert"`
	TlsKey  string `mapstructure:"tlskey"`
}

type cfgImage struct {
	// Width is the maximum og:image width, 0 serves posters as is.
	Width   int `mapstructure:"width"`
	Quality int `mapstructure:"quality"`
}

// loadConfig reads the config file, SHOWGRAPH_ environment variables and
// command line flags, in increasing order of precedence.
func loadConfig(args []string) (*cfgMain, error) {
	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	configFile := flags.String("config", "", "Path of config file, default "+configName+".yaml in . or /etc/"+configName)
	flags.String("logfile", "", "Path of logfile. Use 'syslog' for syslog, 'stdout' "+
		"for standard output, or 'none' to disable logging.")
	flags.Int("port", 8080, "Port to listen on")
	flags.String("baseurl", "", "URL prefix of links in meta tags, e.g. https://tv.example.com")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("listen.port", 8080)
	v.SetDefault("listen.tlscert", "")
	v.SetDefault("listen.tlskey", "")
	v.SetDefault("cachedir", "")
	v.SetDefault("logfile", "stdout")
	v.SetDefault("baseurl", "")
	v.SetDefault("sitename", "")
	v.SetDefault("locale", "")
	v.SetDefault("defaultimage", "")
	v.SetDefault("scaninterval", 5*time.Minute)
	v.SetDefault("image.width", 1200)
	v.SetDefault("image.quality", imageresize.DefaultQuality)

	for key, flag := range map[string]string{
		"logfile":     "logfile",
		"listen.port": "port",
		"baseurl":     "baseurl",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(configName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/" + configName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	config := &cfgMain{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if config.ScanInterval <= 0 {
		return nil, fmt.Errorf("scaninterval must be positive, got %s", config.ScanInterval)
	}
	for i, c := range config.Collections {
		if c.Directory == "" {
			return nil, fmt.Errorf("collection %d (%s): directory is required", i, c.Name)
		}
	}
	return config, nil
}
