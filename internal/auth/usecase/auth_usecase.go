package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	authdomain "embox-backend/internal/auth/domain"
	"embox-backend/internal/auth/repository"
	"embox-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
)

// stateTTL bounds how long a consent-screen round trip may take.
const stateTTL = 10 * time.Minute

const defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthUsecase drives the Google OAuth flow that turns a chat user into a
// stored Gmail access credential.
type AuthUsecase interface {
	// LoginURL builds the consent-screen URL. The chat user id travels in
	// a signed state parameter so the callback can correlate the two.
	LoginURL(chatUserID string) (string, error)

	// HandleCallback exchanges the authorization code, fetches the Google
	// profile and stores the access token keyed by the chat user id
	// recovered from the state.
	HandleCallback(ctx context.Context, code, state string) (*authdomain.Profile, error)

	HasCredential(chatUserID string) (bool, error)
	Logout(chatUserID string) error
}

type authUsecase struct {
	creds       repository.CredentialRepository
	oauthConfig *oauth2.Config
	stateSecret []byte
	userinfoURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewAuthUsecase(creds repository.CredentialRepository, cfg *config.Config, logger *zap.Logger) AuthUsecase {
	return &authUsecase{
		creds: creds,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes: []string{
				"openid",
				"email",
				gmailapi.GmailReadonlyScope,
				gmailapi.GmailSendScope,
			},
			Endpoint: google.Endpoint,
		},
		stateSecret: []byte(cfg.StateSecret),
		userinfoURL: defaultUserinfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

func (u *authUsecase) LoginURL(chatUserID string) (string, error) {
	if chatUserID == "" {
		return "", errors.New("missing chat user id")
	}
	state, err := u.signState(chatUserID)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return u.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (u *authUsecase) HandleCallback(ctx context.Context, code, state string) (*authdomain.Profile, error) {
	chatUserID, err := u.parseState(state)
	if err != nil {
		return nil, err
	}

	token, err := u.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	profile, err := u.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	if err := u.creds.Put(chatUserID, token.AccessToken); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	u.logger.Info("credential stored",
		zap.String("chat_user_id", chatUserID),
		zap.String("email", profile.Email))

	return profile, nil
}

func (u *authUsecase) HasCredential(chatUserID string) (bool, error) {
	_, ok, err := u.creds.Get(chatUserID)
	return ok, err
}

func (u *authUsecase) Logout(chatUserID string) error {
	return u.creds.Delete(chatUserID)
}

func (u *authUsecase) signState(chatUserID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": chatUserID,
		"iat": now.Unix(),
		"exp": now.Add(stateTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.stateSecret)
}

func (u *authUsecase) parseState(state string) (string, error) {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return u.stateSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid state: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid state claims")
	}
	chatUserID, _ := claims["sub"].(string)
	if chatUserID == "" {
		return "", errors.New("state is missing the chat user id")
	}
	return chatUserID, nil
}

func (u *authUsecase) fetchProfile(ctx context.Context, accessToken string) (*authdomain.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint status %d", resp.StatusCode)
	}

	var profile authdomain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	return &profile, nil
}
