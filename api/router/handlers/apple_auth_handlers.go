package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"parley/config"
	"parley/logger"
	"parley/models"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	appleIssuer       = "https://appleid.apple.com"
	appleAuthorizeURL = "https://appleid.apple.com/auth/authorize"
	appleStateTTL     = 10 * time.Minute
)

// appleStates tracks the states of in-flight Apple login attempts. Apple
// returns the authorization response as a cross-site form POST, which
// browsers strip cookies from, so the state has to live server-side rather
// than in a cookie like the GitHub flow.
var appleStates = struct {
	sync.Mutex
	issued map[string]time.Time
}{issued: make(map[string]time.Time)}

// issueAppleState mints a one-shot login state, evicting stale entries while
// it holds the lock.
func issueAppleState() string {
	state := uuid.NewString()
	now := time.Now()

	appleStates.Lock()
	defer appleStates.Unlock()
	for s, issuedAt := range appleStates.issued {
		if now.Sub(issuedAt) > appleStateTTL {
			delete(appleStates.issued, s)
		}
	}
	appleStates.issued[state] = now
	return state
}

// consumeAppleState accepts each issued state exactly once, within its TTL.
func consumeAppleState(state string) bool {
	if state == "" {
		return false
	}
	appleStates.Lock()
	defer appleStates.Unlock()
	issuedAt, ok := appleStates.issued[state]
	if !ok {
		return false
	}
	delete(appleStates.issued, state)
	return time.Since(issuedAt) <= appleStateTTL
}

// appleUserPayload is the optional `user` form field Apple sends on the very
// first authorization for an account.
type appleUserPayload struct {
	Name struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"name"`
	Email string `json:"email"`
}

// AppleLoginHandler starts Sign in with Apple by redirecting to Apple's
// authorization endpoint.
// @Summary Apple Sign In login
// @Description Redirects to Apple's authorize endpoint with a one-shot state.
// @Tags Auth
// @Success 302 "Redirect to Apple"
// @Failure 503 {object} models.ErrorResponse "Apple login is not configured"
// @Router /auth/apple/login [get]
func AppleLoginHandler(w http.ResponseWriter, r *http.Request) {
	conf := config.AppConfig.Auth.Apple
	if conf.ClientID == "" {
		respondWithError(w, http.StatusServiceUnavailable, "Apple login is not configured")
		return
	}

	q := url.Values{}
	q.Set("client_id", conf.ClientID)
	q.Set("redirect_uri", conf.RedirectURL)
	q.Set("response_type", "code id_token")
	q.Set("response_mode", "form_post")
	q.Set("scope", "name email")
	q.Set("state", issueAppleState())
	http.Redirect(w, r, appleAuthorizeURL+"?"+q.Encode(), http.StatusFound)
}

// AppleCallbackHandler completes Sign in with Apple. Apple delivers the
// authorization response as a form POST carrying the identity token.
// @Summary Apple Sign In callback
// @Description Verifies the identity token against Apple's JWKS, upserts the user and issues a session.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id_token formData string true "Apple identity token"
// @Param state formData string true "Opaque state from the login redirect"
// @Param user formData string false "First-login user payload"
// @Success 200 {object} models.Session "Session issued"
// @Failure 400 {object} models.ErrorResponse "Missing identity token or unknown state"
// @Failure 401 {object} models.ErrorResponse "Identity token failed verification"
// @Router /auth/apple/callback [post]
func AppleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	if config.AppConfig.Auth.Apple.ClientID == "" {
		respondWithError(w, http.StatusServiceUnavailable, "Apple login is not configured")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithErrorDetails(w, http.StatusBadRequest, "Invalid form payload", err.Error())
		return
	}

	if !consumeAppleState(r.PostFormValue("state")) {
		logger.Error("AppleCallbackHandler: Unknown or reused OAuth state")
		respondWithError(w, http.StatusBadRequest, "OAuth state mismatch")
		return
	}

	idToken := r.PostFormValue("id_token")
	if idToken == "" {
		respondWithError(w, http.StatusBadRequest, "Missing id_token")
		return
	}

	claims, err := parseAppleIdentityToken(r.Context(), idToken)
	if err != nil {
		logger.Error("AppleCallbackHandler: Identity token rejected: %v", err)
		respondWithErrorDetails(w, http.StatusUnauthorized, "Identity token failed validation", err.Error())
		return
	}

	info := models.OAuthUserInfo{
		Provider:       "apple",
		ProviderUserID: claims.Subject,
		Username:       appleUsername(claims),
		Email:          claims.Email,
	}

	// The user payload only arrives on first login; use it for the display name.
	if rawUser := r.PostFormValue("user"); rawUser != "" {
		var payload appleUserPayload
		if err := json.Unmarshal([]byte(rawUser), &payload); err == nil {
			info.DisplayName = strings.TrimSpace(payload.Name.FirstName + " " + payload.Name.LastName)
			if info.Email == "" {
				info.Email = payload.Email
			}
		}
	}

	finishLogin(w, info)
}

// appleUsername derives a stable local username from the claims. Apple does
// not expose a handle, so we prefer the email local part.
func appleUsername(claims models.AppleIdentityClaims) string {
	if claims.Email != "" {
		if at := strings.Index(claims.Email, "@"); at > 0 {
			return claims.Email[:at]
		}
	}
	return "apple-" + claims.Subject
}

// parseAppleIdentityToken verifies the identity token's signature against
// Apple's published JWKS and validates issuer, audience and expiry.
func parseAppleIdentityToken(ctx context.Context, idToken string) (models.AppleIdentityClaims, error) {
	set, err := jwk.Fetch(ctx, config.AppConfig.Auth.Apple.JWKSURL)
	if err != nil {
		return models.AppleIdentityClaims{}, fmt.Errorf("fetching Apple signing keys: %w", err)
	}

	token, err := jwt.Parse([]byte(idToken),
		jwt.WithKeySet(set),
		jwt.WithIssuer(appleIssuer),
		jwt.WithAudience(config.AppConfig.Auth.Apple.ClientID),
		jwt.WithValidate(true),
	)
	if err != nil {
		return models.AppleIdentityClaims{}, fmt.Errorf("verifying identity token: %w", err)
	}
	if token.Subject() == "" {
		return models.AppleIdentityClaims{}, errors.New("token has no subject")
	}

	claims := models.AppleIdentityClaims{
		Issuer:    token.Issuer(),
		Audience:  config.AppConfig.Auth.Apple.ClientID,
		Subject:   token.Subject(),
		ExpiresAt: token.Expiration().Unix(),
		IssuedAt:  token.IssuedAt().Unix(),
	}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	return claims, nil
}
