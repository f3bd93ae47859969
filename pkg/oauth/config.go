package oauth

// GoogleConfig holds Google OAuth credentials.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// FacebookConfig holds Facebook OAuth credentials.
type FacebookConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// GitHubConfig holds GitHub OAuth credentials.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}
