package setup

import (
	"os"
	"time"

	"github.com/giantswarm/microerror"
	"gopkg.in/yaml.v2"

	"github.com/giantswarm/auth-settings/pkg/key"
)

const (
	DefaultAddress           = "localhost:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
)

type Config struct {
	Server Server `yaml:"server,omitempty"`
	Source Source `yaml:"source,omitempty"`
}

type Server struct {
	Address           string        `yaml:"address,omitempty"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout,omitempty"`
}

// Source selects where the deployment config is read from. A values file
// takes precedence over the dex app.
type Source struct {
	ValuesFile string `yaml:"valuesFile,omitempty"`
	DexApp     DexApp `yaml:"dexApp,omitempty"`
}

type DexApp struct {
	Name      string `yaml:"name,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Server: Server{
			Address:           DefaultAddress,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
		Source: Source{
			DexApp: DexApp{
				Namespace: key.DexAppDefaultNamespace,
			},
		},
	}
}

// GetConfigFromFile reads the service config. Fields missing from the file
// keep their defaults.
func GetConfigFromFile(fileLocation string) (Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(fileLocation)
	if err != nil {
		return config, microerror.Maskf(invalidConfigError, "Failed to get config from file: %s", err)
	}

	if err := yaml.UnmarshalStrict(file, &config); err != nil {
		return config, microerror.Maskf(invalidConfigError, "Failed to get config from file: %s", err)
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	if c.Server.Address == "" {
		return microerror.Maskf(invalidConfigError, "server address must not be empty")
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return microerror.Maskf(invalidConfigError, "server read header timeout must not be negative")
	}
	if c.Source.ValuesFile == "" && c.Source.DexApp.Namespace == "" {
		return microerror.Maskf(invalidConfigError, "either a values file or a dex app namespace must be given")
	}
	return nil
}

// UsesDex reports whether the deployment config is read from the cluster.
func (c Config) UsesDex() bool {
	return c.Source.ValuesFile == ""
}
