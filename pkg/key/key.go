package key

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	AppLabel               = "app.kubernetes.io/name"
	DexAppLabelValue       = "dex-app"
	DexConfigSecretKey     = "default"
	DexConfigSecretSuffix  = "dex-config"
	DexAppDefaultNamespace = "giantswarm"
)

const (
	ConnectorTypeOIDC   = "oidc"
	ConnectorTypeGitHub = "github"
)

const (
	OIDCDocsHref   = "https://coder.com/docs/coder-oss/latest/admin/auth#openid-connect-with-google"
	GitHubDocsHref = "https://coder.com/docs/coder-oss/latest/admin/auth#github"
)

const (
	MetricNamespace = "auth_settings"
	RequestIDHeader = "X-Request-Id"
	RedactedValue   = "********"
)

func DexLabelSelector() metav1.LabelSelector {
	return metav1.LabelSelector{
		MatchLabels: map[string]string{
			AppLabel: DexAppLabelValue,
		},
	}
}

func GetDexConfigName(name string) string {
	return fmt.Sprintf("%s-%s", name, DexConfigSecretSuffix)
}

func GetGitHubEnterpriseBaseURL(hostName string) string {
	return fmt.Sprintf("https://%s", hostName)
}

func GetGitHubTeam(organization string, team string) string {
	return fmt.Sprintf("%s/%s", organization, team)
}
