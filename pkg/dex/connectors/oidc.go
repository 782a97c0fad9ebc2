package connectors

// OIDCConfig holds configuration options for OpenID Connect logins.
//
// Source: https://github.com/dexidp/dex/blob/v2.42.0/connector/oidc/oidc.go
type OIDCConfig struct {
	Issuer       string `json:"issuer"`
	ClientID     string `json:"clientID"`
	ClientSecret string `json:"clientSecret,omitempty"`
	RedirectURI  string `json:"redirectURI"`

	// Scopes defaults to "profile" and "email".
	Scopes []string `json:"scopes,omitempty"`

	// HostedDomains restricts logins to the given email domains.
	HostedDomains []string `json:"hostedDomains,omitempty"`

	InsecureEnableGroups bool     `json:"insecureEnableGroups,omitempty"`
	AllowedGroups        []string `json:"allowedGroups,omitempty"`
	GetUserInfo          bool     `json:"getUserInfo,omitempty"`
}
