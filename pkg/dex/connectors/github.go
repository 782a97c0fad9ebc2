package connectors

// GitHubConfig holds configuration options for GitHub logins.
//
// Source: https://github.com/dexidp/dex/blob/v2.42.0/connector/github/github.go
type GitHubConfig struct {
	ClientID     string `json:"clientID"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`

	// Org is deprecated, use Orgs instead.
	Org string `json:"org,omitempty"`

	Orgs []GitHubOrg `json:"orgs,omitempty"`

	// HostName is the GitHub Enterprise hostname.
	HostName string `json:"hostName,omitempty"`

	TeamNameField string `json:"teamNameField,omitempty"`
	LoadAllGroups bool   `json:"loadAllGroups,omitempty"`
}

// GitHubOrg holds org-team filters, in which teams are optional.
type GitHubOrg struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams,omitempty"`
}

// Organizations returns all allowed organization names, including the
// deprecated single org.
func (c GitHubConfig) Organizations() []string {
	orgs := []string{}
	if c.Org != "" {
		orgs = append(orgs, c.Org)
	}
	for _, o := range c.Orgs {
		orgs = append(orgs, o.Name)
	}
	return orgs
}
