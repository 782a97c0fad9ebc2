// Package deployment holds the deployment configuration shown on the
// settings pages, and the sources it is fetched from.
package deployment

import "github.com/giantswarm/auth-settings/pkg/key"

type OptionValue interface {
	string | bool | []string
}

// ConfigOption is a single deployment option. Options are read-only once
// built.
type ConfigOption[T OptionValue] struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Flag        string `json:"flag,omitempty"`
	Secret      bool   `json:"secret,omitempty"`
	Default     T      `json:"default"`
	Value       T      `json:"value"`
}

// DeploymentConfig maps the known option keys to their options. Fields can be
// nil when a source does not provide them.
type DeploymentConfig struct {
	OIDCClientID     *ConfigOption[string]   `json:"oidc_client_id"`
	OIDCClientSecret *ConfigOption[string]   `json:"oidc_client_secret"`
	OIDCAllowSignups *ConfigOption[bool]     `json:"oidc_allow_signups"`
	OIDCEmailDomain  *ConfigOption[string]   `json:"oidc_email_domain"`
	OIDCIssuerURL    *ConfigOption[string]   `json:"oidc_issuer_url"`
	OIDCScopes       *ConfigOption[[]string] `json:"oidc_scopes"`

	OAuth2GithubClientID             *ConfigOption[string]   `json:"oauth2_github_client_id"`
	OAuth2GithubClientSecret         *ConfigOption[string]   `json:"oauth2_github_client_secret"`
	OAuth2GithubAllowSignups         *ConfigOption[bool]     `json:"oauth2_github_allow_signups"`
	OAuth2GithubAllowedOrganizations *ConfigOption[[]string] `json:"oauth2_github_allowed_organizations"`
	OAuth2GithubAllowedTeams         *ConfigOption[[]string] `json:"oauth2_github_allowed_teams"`
	OAuth2GithubEnterpriseBaseURL    *ConfigOption[string]   `json:"oauth2_github_enterprise_base_url"`
}

// Option is an untyped view of a ConfigOption, used for lookups by key.
type Option struct {
	Key         string
	Name        string
	Description string
	Secret      bool
	// Value is a string, bool or []string.
	Value any
}

func option[T OptionValue](k string, o *ConfigOption[T]) (Option, bool) {
	if o == nil {
		return Option{Key: k}, false
	}
	return Option{
		Key:         k,
		Name:        o.Name,
		Description: o.Description,
		Secret:      o.Secret,
		Value:       o.Value,
	}, true
}

// Options returns every known option in catalogue order. Options missing from
// the config only carry their key.
func (c DeploymentConfig) Options() []Option {
	options := make([]Option, 0, len(Keys))
	for _, k := range Keys {
		o, _ := c.Get(k)
		options = append(options, o)
	}
	return options
}

// Get looks an option up by key. The boolean is false for unknown keys and
// for options that are not set.
func (c DeploymentConfig) Get(k string) (Option, bool) {
	switch k {
	case KeyOIDCClientID:
		return option(k, c.OIDCClientID)
	case KeyOIDCClientSecret:
		return option(k, c.OIDCClientSecret)
	case KeyOIDCAllowSignups:
		return option(k, c.OIDCAllowSignups)
	case KeyOIDCEmailDomain:
		return option(k, c.OIDCEmailDomain)
	case KeyOIDCIssuerURL:
		return option(k, c.OIDCIssuerURL)
	case KeyOIDCScopes:
		return option(k, c.OIDCScopes)
	case KeyOAuth2GithubClientID:
		return option(k, c.OAuth2GithubClientID)
	case KeyOAuth2GithubClientSecret:
		return option(k, c.OAuth2GithubClientSecret)
	case KeyOAuth2GithubAllowSignups:
		return option(k, c.OAuth2GithubAllowSignups)
	case KeyOAuth2GithubAllowedOrganizations:
		return option(k, c.OAuth2GithubAllowedOrganizations)
	case KeyOAuth2GithubAllowedTeams:
		return option(k, c.OAuth2GithubAllowedTeams)
	case KeyOAuth2GithubEnterpriseBaseURL:
		return option(k, c.OAuth2GithubEnterpriseBaseURL)
	}
	return Option{Key: k}, false
}

// Redacted returns a copy in which every non-empty secret value is replaced.
func (c DeploymentConfig) Redacted() DeploymentConfig {
	c.OIDCClientSecret = redact(c.OIDCClientSecret)
	c.OAuth2GithubClientSecret = redact(c.OAuth2GithubClientSecret)
	return c
}

func redact(o *ConfigOption[string]) *ConfigOption[string] {
	if o == nil || !o.Secret || o.Value == "" {
		return o
	}
	r := *o
	r.Value = key.RedactedValue
	return &r
}
