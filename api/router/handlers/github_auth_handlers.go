package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"parley/config"
	"parley/database"
	"parley/logger"
	"parley/models"

	"parley/api/router/middleware"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const oauthStateCookie = "oauth_state"

// githubOAuthConfig builds the x/oauth2 config from the app configuration.
func githubOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.Auth.GitHub.ClientID,
		ClientSecret: config.AppConfig.Auth.GitHub.ClientSecret,
		RedirectURL:  config.AppConfig.Auth.GitHub.RedirectURL,
		Scopes:       []string{"read:user", "user:email"},
		Endpoint:     githuboauth.Endpoint,
	}
}

// setStateCookie stores the OAuth state parameter so the callback can verify
// the response belongs to a flow we started.
func setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   config.AppConfig.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// checkStateCookie validates and clears the state cookie.
func checkStateCookie(w http.ResponseWriter, r *http.Request, state string) bool {
	cookie, err := r.Cookie(oauthStateCookie)
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})
	return err == nil && state != "" && cookie.Value == state
}

// GithubLoginHandler starts the GitHub OAuth flow.
// @Summary Start GitHub login
// @Description Redirects the browser to GitHub's authorization page.
// @Tags Auth
// @Success 302 "Redirect to GitHub"
// @Failure 503 {object} models.ErrorResponse "GitHub login is not configured"
// @Router /auth/github/login [get]
func GithubLoginHandler(w http.ResponseWriter, r *http.Request) {
	conf := githubOAuthConfig()
	if conf.ClientID == "" {
		respondWithError(w, http.StatusServiceUnavailable, "GitHub login is not configured")
		return
	}

	state := uuid.NewString()
	setStateCookie(w, state)
	http.Redirect(w, r, conf.AuthCodeURL(state), http.StatusFound)
}

// GithubCallbackHandler completes the GitHub OAuth flow.
// @Summary GitHub OAuth callback
// @Description Exchanges the authorization code, upserts the user and issues a session.
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state from the login redirect"
// @Success 200 {object} models.Session "Session issued"
// @Failure 400 {object} models.ErrorResponse "Missing code or state mismatch"
// @Failure 502 {object} models.ErrorResponse "GitHub API failure"
// @Router /auth/github/callback [get]
func GithubCallbackHandler(w http.ResponseWriter, r *http.Request) {
	conf := githubOAuthConfig()
	if conf.ClientID == "" {
		respondWithError(w, http.StatusServiceUnavailable, "GitHub login is not configured")
		return
	}

	if !checkStateCookie(w, r, r.URL.Query().Get("state")) {
		logger.Error("GithubCallbackHandler: OAuth state mismatch")
		respondWithError(w, http.StatusBadRequest, "OAuth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	token, err := conf.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("GithubCallbackHandler: Code exchange failed: %v", err)
		respondWithErrorDetails(w, http.StatusBadGateway, "GitHub token exchange failed", err.Error())
		return
	}

	info, err := fetchGithubUser(r.Context(), conf, token)
	if err != nil {
		logger.Error("GithubCallbackHandler: Fetching GitHub profile failed: %v", err)
		respondWithErrorDetails(w, http.StatusBadGateway, "Failed to fetch GitHub profile", err.Error())
		return
	}

	finishLogin(w, info)
}

// fetchGithubUser loads the authenticated user's profile, falling back to the
// emails endpoint when the profile email is private.
func fetchGithubUser(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (models.OAuthUserInfo, error) {
	client := conf.Client(ctx, token)

	body, err := getJSON(client, "https://api.github.com/user")
	if err != nil {
		return models.OAuthUserInfo{}, err
	}

	id := gjson.GetBytes(body, "id")
	login := gjson.GetBytes(body, "login")
	if !id.Exists() || login.String() == "" {
		return models.OAuthUserInfo{}, fmt.Errorf("GitHub user response missing id or login")
	}

	info := models.OAuthUserInfo{
		Provider:       "github",
		ProviderUserID: id.String(),
		Username:       login.String(),
		DisplayName:    gjson.GetBytes(body, "name").String(),
		Email:          gjson.GetBytes(body, "email").String(),
	}

	if info.Email == "" {
		emails, err := getJSON(client, "https://api.github.com/user/emails")
		if err != nil {
			// The profile is still usable without an email address.
			logger.Warn("fetchGithubUser: Could not fetch emails for %s: %v", info.Username, err)
			return info, nil
		}
		if primary := gjson.GetBytes(emails, "#(primary==true).email"); primary.Exists() {
			info.Email = primary.String()
		} else if first := gjson.GetBytes(emails, "0.email"); first.Exists() {
			info.Email = first.String()
		}
	}
	return info, nil
}

func getJSON(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return body, nil
}

// finishLogin upserts the user, creates a session and writes the login
// response shared by all providers.
func finishLogin(w http.ResponseWriter, info models.OAuthUserInfo) {
	user, err := database.UpsertOAuthUser(info)
	if err != nil {
		logger.Error("finishLogin: Upserting %s user %s failed: %v", info.Provider, info.ProviderUserID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create user account")
		return
	}

	ttl := time.Duration(config.AppConfig.Auth.SessionTTLHours) * time.Hour
	session, err := database.CreateSession(user.ID, ttl)
	if err != nil {
		logger.Error("finishLogin: Creating session for user %d failed: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   config.AppConfig.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"user":    user,
	})
	logger.Info("finishLogin: User %d (%s via %s) logged in", user.ID, user.Username, user.Provider)
}

// LogoutHandler deletes the caller's session.
// @Summary Log out
// @Description Invalidates the current session token.
// @Tags Auth
// @Success 204 "Session deleted"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Router /auth/logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := database.DeleteSession(token); err != nil {
		logger.Error("LogoutHandler: Deleting session failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: middleware.SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUserHandler returns the authenticated user.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "The authenticated user"
// @Failure 401 {object} models.ErrorResponse "No live session"
// @Router /me [get]
func CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
