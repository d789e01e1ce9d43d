package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mvnage/mvnage/pkg/libyear"
	"github.com/mvnage/mvnage/pkg/maven"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = "mvnage.toml"

// duration is a time.Duration that unmarshals from a TOML string like "5s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// resolverConfig configures the repository probe chain. The order of
// repositories in the file is the probe priority order.
type resolverConfig struct {
	Repositories   []string `toml:"repositories"`
	ConnectTimeout duration `toml:"connect_timeout"`
	HeaderTimeout  duration `toml:"header_timeout"`
}

type reportConfig struct {
	Workers int `toml:"workers"`
}

type serverConfig struct {
	Addr string `toml:"addr"`
}

// config is the root application configuration.
type config struct {
	Resolver resolverConfig `toml:"resolver"`
	Report   reportConfig   `toml:"report"`
	Server   serverConfig   `toml:"server"`
}

func defaultConfig() config {
	return config{
		Resolver: resolverConfig{
			Repositories:   maven.DefaultRepositories(),
			ConnectTimeout: duration{maven.DefaultConnectTimeout},
			HeaderTimeout:  duration{maven.DefaultHeaderTimeout},
		},
		Report: reportConfig{Workers: libyear.DefaultWorkers},
		Server: serverConfig{Addr: ":8080"},
	}
}

// loadConfig reads the TOML config at path. An empty path falls back to
// ./mvnage.toml; a missing default file yields the built-in defaults, while
// an explicitly named file must exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(cfg.Resolver.Repositories) == 0 {
		cfg.Resolver.Repositories = maven.DefaultRepositories()
	}
	// Bases must end in a slash so descriptor paths append cleanly.
	for i, r := range cfg.Resolver.Repositories {
		if r == "" {
			return cfg, fmt.Errorf("empty repository URL in %s", path)
		}
		if !strings.HasSuffix(r, "/") {
			cfg.Resolver.Repositories[i] = r + "/"
		}
	}
	if cfg.Resolver.ConnectTimeout.Duration <= 0 {
		cfg.Resolver.ConnectTimeout = duration{maven.DefaultConnectTimeout}
	}
	if cfg.Resolver.HeaderTimeout.Duration <= 0 {
		cfg.Resolver.HeaderTimeout = duration{maven.DefaultHeaderTimeout}
	}
	if cfg.Report.Workers <= 0 {
		cfg.Report.Workers = libyear.DefaultWorkers
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}

// newResolver builds the maven client described by the config.
func (c config) newResolver() *maven.Client {
	httpClient := maven.NewHTTPClient(c.Resolver.ConnectTimeout.Duration, c.Resolver.HeaderTimeout.Duration)
	return maven.NewClient(httpClient, c.Resolver.Repositories)
}
