package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"reviewhub/internal/config"
	"reviewhub/internal/microservices/http-api/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/yandex"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

// ExternalProfile is the slice of a provider profile this service cares
// about: just enough to resolve (or prefill registration for) an account.
type ExternalProfile struct {
	Email     string
	FirstName string
	LastName  string
}

// OAuthService drives the external-provider login flow. It resolves the
// provider identity to an existing account by email, it never creates one: an
// unknown email redirects back to the client with the profile fields prefilled
// so the user can register explicitly.
type OAuthService interface {
	AuthCodeURL(provider, state string) (string, error)
	HandleCallback(ctx context.Context, provider, code string) (redirectURL string, err error)
}

type providerConfig struct {
	oauth       *oauth2.Config
	userInfoURL string
	// provider userinfo payloads differ, each provider parses its own
	parseProfile func(body []byte) (*ExternalProfile, error)
}

type oauthService struct {
	providers      map[string]providerConfig
	userRepo       repository.UserRepository
	authService    AuthService
	callbackClient string
	errorCallback  string
}

func NewOAuthService(userRepo repository.UserRepository, authService AuthService, cfg *config.Config) OAuthService {
	providers := map[string]providerConfig{
		"google": {
			oauth: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.CallbackHost + "/auth/google/redirect",
				Scopes:       []string{"email", "profile"},
				Endpoint:     google.Endpoint,
			},
			userInfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
			parseProfile: parseGoogleProfile,
		},
		"yandex": {
			oauth: &oauth2.Config{
				ClientID:     cfg.YandexClientID,
				ClientSecret: cfg.YandexClientSecret,
				RedirectURL:  cfg.CallbackHost + "/auth/yandex/redirect",
				Endpoint:     yandex.Endpoint,
			},
			userInfoURL:  "https://login.yandex.ru/info?format=json",
			parseProfile: parseYandexProfile,
		},
	}

	return &oauthService{
		providers:      providers,
		userRepo:       userRepo,
		authService:    authService,
		callbackClient: cfg.CallbackClient,
		errorCallback:  cfg.ErrorCallbackClient,
	}
}

// AuthCodeURL builds the provider consent page URL to redirect the user to.
func (s *oauthService) AuthCodeURL(provider, state string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return p.oauth.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code, fetches the provider
// profile and resolves it to an account by email. The returned URL is where
// the client gets redirected: the app callback with a token on success, the
// error callback with prefilled registration fields when no account exists.
func (s *oauthService) HandleCallback(ctx context.Context, provider, code string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	profile, err := s.fetchProfile(ctx, p, token)
	if err != nil {
		return "", err
	}

	return s.loginByEmail(profile)
}

func (s *oauthService) fetchProfile(ctx context.Context, p providerConfig, token *oauth2.Token) (*ExternalProfile, error) {
	client := p.oauth.Client(ctx, token)

	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return p.parseProfile(body)
}

// loginByEmail is a strict lookup, registration stays an explicit user action
func (s *oauthService) loginByEmail(profile *ExternalProfile) (string, error) {
	user, err := s.userRepo.FindByEmail(profile.Email)
	if err != nil {
		query := url.Values{}
		query.Set("email", profile.Email)
		query.Set("firstName", profile.FirstName)
		query.Set("lastName", profile.LastName)
		return s.errorCallback + "?" + query.Encode(), nil
	}

	token, err := s.authService.IssueAccessToken(user)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("token", token)
	return s.callbackClient + "?" + query.Encode(), nil
}

func parseGoogleProfile(body []byte) (*ExternalProfile, error) {
	var payload struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.Email == "" {
		return nil, errors.New("provider profile has no email")
	}
	return &ExternalProfile{
		Email:     payload.Email,
		FirstName: payload.GivenName,
		LastName:  payload.FamilyName,
	}, nil
}

func parseYandexProfile(body []byte) (*ExternalProfile, error) {
	var payload struct {
		DefaultEmail string `json:"default_email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.DefaultEmail == "" {
		return nil, errors.New("provider profile has no email")
	}
	return &ExternalProfile{
		Email:     payload.DefaultEmail,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}, nil
}
