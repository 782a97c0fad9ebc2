// Package authsettings builds the authentication settings page out of a
// deployment config.
package authsettings

import (
	"github.com/giantswarm/auth-settings/pkg/deployment"
	"github.com/giantswarm/auth-settings/pkg/key"
	"github.com/giantswarm/auth-settings/pkg/settings"
)

const (
	PageTitle = "Authentication"

	OIDCGroupID   = "oidc"
	GitHubGroupID = "github"
)

func Page(c deployment.DeploymentConfig) settings.Page {
	return settings.Page{
		Title:  PageTitle,
		Groups: []settings.Group{OIDCGroup(c), GitHubGroup(c)},
	}
}

// OIDCGroup is enabled iff the OIDC client ID is set.
func OIDCGroup(c deployment.DeploymentConfig) settings.Group {
	return settings.NewGroup(
		OIDCGroupID,
		"Login with OpenID Connect",
		"Set up authentication to login with OpenID Connect.",
		key.OIDCDocsHref,
		value(c.OIDCClientID),
		[]settings.Row{
			row(c.OIDCClientID),
			row(c.OIDCClientSecret),
			row(c.OIDCAllowSignups),
			row(c.OIDCEmailDomain),
			row(c.OIDCIssuerURL),
			row(c.OIDCScopes),
		},
	)
}

// GitHubGroup is enabled iff the GitHub client ID is set.
func GitHubGroup(c deployment.DeploymentConfig) settings.Group {
	return settings.NewGroup(
		GitHubGroupID,
		"Login with GitHub",
		"Set up authentication to login with GitHub.",
		key.GitHubDocsHref,
		value(c.OAuth2GithubClientID),
		[]settings.Row{
			row(c.OAuth2GithubClientID),
			row(c.OAuth2GithubClientSecret),
			row(c.OAuth2GithubAllowSignups),
			row(c.OAuth2GithubAllowedOrganizations),
			row(c.OAuth2GithubAllowedTeams),
			row(c.OAuth2GithubEnterpriseBaseURL),
		},
	)
}

// row renders a missing option as an empty row.
func row[T deployment.OptionValue](o *deployment.ConfigOption[T]) settings.Row {
	if o == nil {
		return settings.Row{}
	}
	return settings.Row{
		Name:        o.Name,
		Description: o.Description,
		Value:       value(o),
	}
}

func value[T deployment.OptionValue](o *deployment.ConfigOption[T]) settings.Value {
	if o == nil {
		return settings.Value{}
	}
	switch v := any(o.Value).(type) {
	case string:
		return settings.StringValue(v)
	case bool:
		return settings.BoolValue(v)
	case []string:
		return settings.ListValue(v)
	}
	return settings.Value{}
}
