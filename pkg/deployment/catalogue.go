package deployment

const (
	KeyOIDCClientID     = "oidc_client_id"
	KeyOIDCClientSecret = "oidc_client_secret"
	KeyOIDCAllowSignups = "oidc_allow_signups"
	KeyOIDCEmailDomain  = "oidc_email_domain"
	KeyOIDCIssuerURL    = "oidc_issuer_url"
	KeyOIDCScopes       = "oidc_scopes"

	KeyOAuth2GithubClientID             = "oauth2_github_client_id"
	KeyOAuth2GithubClientSecret         = "oauth2_github_client_secret"
	KeyOAuth2GithubAllowSignups         = "oauth2_github_allow_signups"
	KeyOAuth2GithubAllowedOrganizations = "oauth2_github_allowed_organizations"
	KeyOAuth2GithubAllowedTeams         = "oauth2_github_allowed_teams"
	KeyOAuth2GithubEnterpriseBaseURL    = "oauth2_github_enterprise_base_url"
)

// Keys lists every known option key in catalogue order.
var Keys = []string{
	KeyOIDCClientID,
	KeyOIDCClientSecret,
	KeyOIDCAllowSignups,
	KeyOIDCEmailDomain,
	KeyOIDCIssuerURL,
	KeyOIDCScopes,
	KeyOAuth2GithubClientID,
	KeyOAuth2GithubClientSecret,
	KeyOAuth2GithubAllowSignups,
	KeyOAuth2GithubAllowedOrganizations,
	KeyOAuth2GithubAllowedTeams,
	KeyOAuth2GithubEnterpriseBaseURL,
}

// Values holds plain option values as they are read from a source.
type Values struct {
	OIDC   OIDCValues   `yaml:"oidc" json:"oidc"`
	GitHub GitHubValues `yaml:"github" json:"github"`
}

type OIDCValues struct {
	ClientID     string   `yaml:"clientID" json:"clientID"`
	ClientSecret string   `yaml:"clientSecret" json:"clientSecret"`
	AllowSignups bool     `yaml:"allowSignups" json:"allowSignups"`
	EmailDomain  string   `yaml:"emailDomain" json:"emailDomain"`
	IssuerURL    string   `yaml:"issuerURL" json:"issuerURL"`
	Scopes       []string `yaml:"scopes" json:"scopes"`
}

type GitHubValues struct {
	ClientID             string   `yaml:"clientID" json:"clientID"`
	ClientSecret         string   `yaml:"clientSecret" json:"clientSecret"`
	AllowSignups         bool     `yaml:"allowSignups" json:"allowSignups"`
	AllowedOrganizations []string `yaml:"allowedOrganizations" json:"allowedOrganizations"`
	AllowedTeams         []string `yaml:"allowedTeams" json:"allowedTeams"`
	EnterpriseBaseURL    string   `yaml:"enterpriseBaseURL" json:"enterpriseBaseURL"`
}

func DefaultOIDCScopes() []string {
	return []string{"openid", "profile", "email"}
}

func DefaultValues() Values {
	return Values{
		OIDC: OIDCValues{
			AllowSignups: true,
			Scopes:       DefaultOIDCScopes(),
		},
		GitHub: GitHubValues{
			AllowSignups: true,
		},
	}
}

// NewDeploymentConfig fills the option catalogue with the given values.
func NewDeploymentConfig(v Values) DeploymentConfig {
	d := DefaultValues()
	return DeploymentConfig{
		OIDCClientID: &ConfigOption[string]{
			Name:        "OIDC Client ID",
			Description: "Client ID to use for Login with OIDC.",
			Flag:        "oidc-client-id",
			Value:       v.OIDC.ClientID,
		},
		OIDCClientSecret: &ConfigOption[string]{
			Name:        "OIDC Client Secret",
			Description: "Client secret to use for Login with OIDC.",
			Flag:        "oidc-client-secret",
			Secret:      true,
			Value:       v.OIDC.ClientSecret,
		},
		OIDCAllowSignups: &ConfigOption[bool]{
			Name:        "OIDC Allow Signups",
			Description: "Whether new users can sign up with OIDC.",
			Flag:        "oidc-allow-signups",
			Default:     d.OIDC.AllowSignups,
			Value:       v.OIDC.AllowSignups,
		},
		OIDCEmailDomain: &ConfigOption[string]{
			Name:        "OIDC Email Domain",
			Description: "Email domain that clients logging in with OIDC must match.",
			Flag:        "oidc-email-domain",
			Value:       v.OIDC.EmailDomain,
		},
		OIDCIssuerURL: &ConfigOption[string]{
			Name:        "OIDC Issuer URL",
			Description: "Issuer URL to use for Login with OIDC.",
			Flag:        "oidc-issuer-url",
			Value:       v.OIDC.IssuerURL,
		},
		OIDCScopes: &ConfigOption[[]string]{
			Name:        "OIDC Scopes",
			Description: "Scopes to grant when authenticating with OIDC.",
			Flag:        "oidc-scopes",
			Default:     list(d.OIDC.Scopes),
			Value:       list(v.OIDC.Scopes),
		},
		OAuth2GithubClientID: &ConfigOption[string]{
			Name:        "OAuth2 GitHub Client ID",
			Description: "Client ID for Login with GitHub.",
			Flag:        "oauth2-github-client-id",
			Value:       v.GitHub.ClientID,
		},
		OAuth2GithubClientSecret: &ConfigOption[string]{
			Name:        "OAuth2 GitHub Client Secret",
			Description: "Client secret for Login with GitHub.",
			Flag:        "oauth2-github-client-secret",
			Secret:      true,
			Value:       v.GitHub.ClientSecret,
		},
		OAuth2GithubAllowSignups: &ConfigOption[bool]{
			Name:        "OAuth2 GitHub Allow Signups",
			Description: "Whether new users can sign up with GitHub.",
			Flag:        "oauth2-github-allow-signups",
			Default:     d.GitHub.AllowSignups,
			Value:       v.GitHub.AllowSignups,
		},
		OAuth2GithubAllowedOrganizations: &ConfigOption[[]string]{
			Name:        "OAuth2 GitHub Allowed Organizations",
			Description: "Organizations the user must be a member of to Login with GitHub.",
			Flag:        "oauth2-github-allowed-orgs",
			Default:     []string{},
			Value:       list(v.GitHub.AllowedOrganizations),
		},
		OAuth2GithubAllowedTeams: &ConfigOption[[]string]{
			Name:        "OAuth2 GitHub Teams",
			Description: "Teams inside organizations the user must be a member of to Login with GitHub. Structured as: <organization-name>/<team-slug>.",
			Flag:        "oauth2-github-allowed-teams",
			Default:     []string{},
			Value:       list(v.GitHub.AllowedTeams),
		},
		OAuth2GithubEnterpriseBaseURL: &ConfigOption[string]{
			Name:        "OAuth2 GitHub Enterprise Base URL",
			Description: "Base URL of a GitHub Enterprise deployment to use for Login with GitHub.",
			Flag:        "oauth2-github-enterprise-base-url",
			Value:       v.GitHub.EnterpriseBaseURL,
		},
	}
}

// list keeps absent lists from being encoded as null.
func list(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
