package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/client/models"
	"github.com/dmitrijs2005/movieapi/internal/common"
)

// HTTPClient is a thin JSON client for the movie API. It remembers the bearer
// token returned by Login.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// RegisterRequest is the sign-up body. Birthday uses YYYY-MM-DD.
type RegisterRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Birthday string `json:"birthday,omitempty"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type PosterUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	body := map[string]string{"username": username, "password": string(password)}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.user = &resp.User
	c.mu.Unlock()
	return &resp.User, nil
}

func (c *HTTPClient) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = nil
}

// CurrentUser returns the user from the last successful Login.
func (c *HTTPClient) CurrentUser() (*models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.user != nil
}

func (c *HTTPClient) GetUser(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Movies(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.favorite(ctx, http.MethodPost, username, movieID)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.favorite(ctx, http.MethodDelete, username, movieID)
}

func (c *HTTPClient) favorite(ctx context.Context, method, username, movieID string) (*models.User, error) {
	var u models.User
	path := "/users/" + url.PathEscape(username) + "/movies/" + url.PathEscape(movieID)
	if err := c.do(ctx, method, path, nil, &u); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.user != nil && c.user.UserName == username {
		c.user.FavoriteMovies = u.FavoriteMovies
	}
	c.mu.Unlock()
	return &u, nil
}

// PosterUploadURL asks the server for a presigned URL to upload a poster for
// the movie.
func (c *HTTPClient) PosterUploadURL(ctx context.Context, movieID string) (*PosterUpload, error) {
	var up PosterUpload
	if err := c.do(ctx, http.MethodPost, "/movies/"+url.PathEscape(movieID)+"/poster", nil, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return statusError(resp.StatusCode, e.Error)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
