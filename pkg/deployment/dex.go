package deployment

import (
	"context"
	"fmt"
	"time"

	"github.com/giantswarm/apiextensions-application/api/v1alpha1"
	"github.com/giantswarm/backoff"
	"github.com/giantswarm/k8smetadata/pkg/label"
	"github.com/giantswarm/microerror"
	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/giantswarm/auth-settings/pkg/dex"
	"github.com/giantswarm/auth-settings/pkg/key"
)

type DexSourceConfig struct {
	Client client.Client
	Log    logr.Logger

	// AppName selects the dex App explicitly. When empty, the management
	// cluster dex App is discovered by label in AppNamespace.
	AppName      string
	AppNamespace string

	// NewBackoff defaults to three retries at most one second apart.
	NewBackoff func() backoff.Interface
}

// DexSource reads the connectors that dex-operator manages for a dex App and
// maps the first OIDC and GitHub connectors onto option values.
type DexSource struct {
	client.Client
	log          logr.Logger
	appName      string
	appNamespace string
	newBackoff   func() backoff.Interface
}

func NewDexSource(c DexSourceConfig) (*DexSource, error) {
	if c.Client == nil {
		return nil, microerror.Maskf(invalidConfigError, "client cannot be nil")
	}
	if (logr.Logger{}) == c.Log {
		return nil, microerror.Maskf(invalidConfigError, "log cannot be nil")
	}
	if c.AppNamespace == "" {
		return nil, microerror.Maskf(invalidConfigError, "no dex app namespace given")
	}
	newBackoff := c.NewBackoff
	if newBackoff == nil {
		newBackoff = func() backoff.Interface {
			return backoff.NewMaxRetries(3, 1*time.Second)
		}
	}
	return &DexSource{
		Client:       c.Client,
		log:          c.Log,
		appName:      c.AppName,
		appNamespace: c.AppNamespace,
		newBackoff:   newBackoff,
	}, nil
}

func (s *DexSource) DeploymentConfig(ctx context.Context) (DeploymentConfig, error) {
	values, err := s.GetValues(ctx)
	if err != nil {
		return DeploymentConfig{}, microerror.Mask(err)
	}
	return NewDeploymentConfig(values), nil
}

// GetValues returns default values when the dex App or its config secret do
// not exist, which renders both providers as disabled.
func (s *DexSource) GetValues(ctx context.Context) (Values, error) {
	values := DefaultValues()

	app, err := s.getApp(ctx)
	if IsNotFound(err) {
		s.log.Info(fmt.Sprintf("No dex app found in namespace %s.", s.appNamespace))
		return values, nil
	} else if err != nil {
		return values, microerror.Mask(err)
	}

	secret := &corev1.Secret{}
	{
		nn := types.NamespacedName{Name: key.GetDexConfigName(app.Name), Namespace: app.Namespace}
		err = s.get(ctx, nn, secret)
		if apierrors.IsNotFound(err) {
			s.log.Info(fmt.Sprintf("No dex config secret %s found for dex app.", nn))
			return values, nil
		} else if err != nil {
			return values, microerror.Mask(err)
		}
	}

	config, err := dex.GetDexConfigFromSecret(secret)
	if err != nil {
		return values, microerror.Mask(err)
	}
	connectors := dex.GetConnectors(config)

	if c, ok := dex.FindConnector(connectors, key.ConnectorTypeOIDC); ok {
		oidc, err := c.OIDCConfig()
		if err != nil {
			return values, microerror.Mask(err)
		}
		values.OIDC.ClientID = oidc.ClientID
		values.OIDC.ClientSecret = oidc.ClientSecret
		values.OIDC.IssuerURL = oidc.Issuer
		if len(oidc.Scopes) > 0 {
			values.OIDC.Scopes = oidc.Scopes
		}
		if len(oidc.HostedDomains) > 0 {
			values.OIDC.EmailDomain = oidc.HostedDomains[0]
		}
	}

	if c, ok := dex.FindConnector(connectors, key.ConnectorTypeGitHub); ok {
		github, err := c.GitHubConfig()
		if err != nil {
			return values, microerror.Mask(err)
		}
		values.GitHub.ClientID = github.ClientID
		values.GitHub.ClientSecret = github.ClientSecret
		values.GitHub.AllowedOrganizations = github.Organizations()
		for _, org := range github.Orgs {
			for _, team := range org.Teams {
				values.GitHub.AllowedTeams = append(values.GitHub.AllowedTeams, key.GetGitHubTeam(org.Name, team))
			}
		}
		if github.HostName != "" {
			values.GitHub.EnterpriseBaseURL = key.GetGitHubEnterpriseBaseURL(github.HostName)
		}
	}

	return values, nil
}

func (s *DexSource) getApp(ctx context.Context) (*v1alpha1.App, error) {
	if s.appName != "" {
		app := &v1alpha1.App{}
		err := s.get(ctx, types.NamespacedName{Name: s.appName, Namespace: s.appNamespace}, app)
		if apierrors.IsNotFound(err) {
			return nil, microerror.Maskf(notFoundError, "dex app %s/%s not found", s.appNamespace, s.appName)
		} else if err != nil {
			return nil, microerror.Mask(err)
		}
		return app, nil
	}

	apps := &v1alpha1.AppList{}
	o := func() error {
		return s.List(ctx, apps, client.InNamespace(s.appNamespace), client.MatchingLabels(key.DexLabelSelector().MatchLabels))
	}
	if err := s.retry(o); err != nil {
		return nil, microerror.Mask(err)
	}
	for i := range apps.Items {
		// apps carrying a cluster label serve workload clusters
		if apps.Items[i].GetLabels()[label.Cluster] != "" {
			continue
		}
		return &apps.Items[i], nil
	}
	return nil, microerror.Maskf(notFoundError, "no management cluster dex app found in namespace %s", s.appNamespace)
}

// get returns NotFound unwrapped so callers can use apierrors.IsNotFound.
func (s *DexSource) get(ctx context.Context, nn types.NamespacedName, obj client.Object) error {
	return s.retry(func() error {
		return s.Get(ctx, nn, obj)
	})
}

// retry retries transient API errors. NotFound, Forbidden and Unauthorized
// are returned after the first attempt.
func (s *DexSource) retry(o func() error) error {
	var permanent error
	wrapped := func() error {
		err := o()
		if isPermanent(err) {
			permanent = err
			return nil
		}
		return err
	}
	if err := backoff.RetryNotify(wrapped, s.newBackoff(), s.notify); err != nil {
		return err
	}
	return permanent
}

func isPermanent(err error) bool {
	return apierrors.IsNotFound(err) || apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err)
}

func (s *DexSource) notify(err error, d time.Duration) {
	s.log.Error(err, fmt.Sprintf("Retrying kubernetes request in %s.", d))
}
