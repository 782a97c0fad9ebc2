package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/giantswarm/apiextensions-application/api/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"

	"github.com/giantswarm/auth-settings/pkg/dex"
	"github.com/giantswarm/auth-settings/pkg/key"
)

const (
	OIDCConnectorConfig = `issuer: https://issuer.example.com
clientID: oidc-client
clientSecret: oidc-secret
redirectURI: https://dex.example.com/callback
scopes:
- openid
- groups
hostedDomains:
- example.com
`
	GitHubConnectorConfig = `clientID: github-client
clientSecret: github-secret
redirectURI: https://dex.example.com/callback
hostName: github.example.com
orgs:
- name: giantswarm
  teams:
  - admins
  - dev
- name: other
`
)

func GetScheme(t *testing.T) *runtime.Scheme {
	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		t.Fatal(err)
	}
	if err := v1alpha1.AddToScheme(scheme); err != nil {
		t.Fatal(err)
	}
	return scheme
}

func GetDexApp(name, namespace string, labels map[string]string) *v1alpha1.App {
	l := map[string]string{key.AppLabel: key.DexAppLabelValue}
	for k, v := range labels {
		l[k] = v
	}
	return &v1alpha1.App{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    l,
		},
	}
}

func GetDexConfig(connectors ...dex.Connector) dex.DexConfig {
	return dex.DexConfig{
		Oidc: dex.DexOidc{
			Giantswarm: &dex.DexOidcOwner{
				Connectors: connectors,
			},
		},
	}
}

func GetDexConfigSecret(t *testing.T, appName, namespace string, config dex.DexConfig) *corev1.Secret {
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatal(err)
	}
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      key.GetDexConfigName(appName),
			Namespace: namespace,
		},
		Data: map[string][]byte{
			key.DexConfigSecretKey: data,
		},
	}
}

func GetOIDCConnector() dex.Connector {
	return dex.Connector{Type: key.ConnectorTypeOIDC, ID: "customer-oidc", Name: "OIDC", Config: OIDCConnectorConfig}
}

func GetGitHubConnector() dex.Connector {
	return dex.Connector{Type: key.ConnectorTypeGitHub, ID: "giantswarm-github", Name: "GitHub", Config: GitHubConnectorConfig}
}

// WriteFile writes content to a file in a fresh temporary directory.
func WriteFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
