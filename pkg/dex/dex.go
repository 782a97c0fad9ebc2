package dex

import (
	"encoding/json"

	"github.com/giantswarm/microerror"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/auth-settings/pkg/dex/connectors"
	"github.com/giantswarm/auth-settings/pkg/key"
)

// DexConfig is the layout of the connector configuration that dex-operator
// writes into the managed dex config secret.
type DexConfig struct {
	Oidc DexOidc `json:"oidc"`
}

type DexOidc struct {
	Giantswarm *DexOidcOwner `json:"giantswarm,omitempty"`
	Customer   *DexOidcOwner `json:"customer,omitempty"`
}

type DexOidcOwner struct {
	Connectors []Connector `json:"connectors"`
}

type Connector struct {
	Type string `json:"connectorType"`
	Name string `json:"connectorName"`
	ID   string `json:"id"`

	// Config is the connector configuration in YAML.
	Config string `json:"connectorConfig"`
}

// GetDexConfigFromSecret decodes the dex config stored in the given secret.
// A secret without the config key yields an empty config.
func GetDexConfigFromSecret(secret *corev1.Secret) (DexConfig, error) {
	config := DexConfig{}
	configData, exists := secret.Data[key.DexConfigSecretKey]
	if !exists || len(configData) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(configData, &config); err != nil {
		return config, microerror.Maskf(invalidConfigError, "failed to decode dex config from secret %s/%s: %s", secret.Namespace, secret.Name, err)
	}
	return config, nil
}

// GetConnectors returns customer connectors followed by giantswarm
// connectors, each in the order they are stored.
func GetConnectors(config DexConfig) []Connector {
	connectors := []Connector{}
	if config.Oidc.Customer != nil {
		connectors = append(connectors, config.Oidc.Customer.Connectors...)
	}
	if config.Oidc.Giantswarm != nil {
		connectors = append(connectors, config.Oidc.Giantswarm.Connectors...)
	}
	return connectors
}

// FindConnector returns the first connector of the given type.
func FindConnector(connectors []Connector, connectorType string) (Connector, bool) {
	for _, c := range connectors {
		if c.Type == connectorType {
			return c, true
		}
	}
	return Connector{}, false
}

func (c Connector) OIDCConfig() (connectors.OIDCConfig, error) {
	config := connectors.OIDCConfig{}
	if err := c.decode(&config); err != nil {
		return config, microerror.Mask(err)
	}
	return config, nil
}

func (c Connector) GitHubConfig() (connectors.GitHubConfig, error) {
	config := connectors.GitHubConfig{}
	if err := c.decode(&config); err != nil {
		return config, microerror.Mask(err)
	}
	return config, nil
}

func (c Connector) decode(v any) error {
	if c.Config == "" {
		return nil
	}
	if err := yaml.Unmarshal([]byte(c.Config), v); err != nil {
		return microerror.Maskf(invalidConfigError, "failed to decode %s connector %q: %s", c.Type, c.ID, err)
	}
	return nil
}
