package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/client/client"
	"github.com/dmitrijs2005/movieapi/internal/client/config"
	"github.com/dmitrijs2005/movieapi/internal/client/models"
	"github.com/dmitrijs2005/movieapi/internal/client/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/filex"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const onlineCheckInterval = 5 * time.Second

// apiClient is the part of client.HTTPClient the commands use.
type apiClient interface {
	Register(ctx context.Context, req client.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Logout()
	CurrentUser() (*models.User, bool)
	GetUser(ctx context.Context, username string) (*models.User, error)
	Movies(ctx context.Context) ([]models.Movie, error)
	AddFavorite(ctx context.Context, username, movieID string) (*models.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error)
	PosterUploadURL(ctx context.Context, movieID string) (*client.PosterUpload, error)
	Ping(ctx context.Context) error
}

type App struct {
	config     *config.Config
	api        apiClient
	cache      movies.Repository
	closeCache func() error
	reader     *bufio.Reader
	out        io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	a := &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		mode:   ModeOnline,
	}

	if c.CacheDSN != "" {
		if err := filex.EnsureParentDir(c.CacheDSN); err != nil {
			return nil, err
		}
		cache, closeFn, err := client.OpenCache(ctx, c.CacheDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing cache: %w", err)
		}
		a.cache, a.closeCache = cache, closeFn
	}
	return a, nil
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.closeCache != nil {
		defer a.closeCache()
	}

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to the movie API CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.api.CurrentUser()
	return ok
}

func (a *App) getMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode", mode)
	}
}

func (a *App) getStatus() string {
	s := string(a.getMode())
	if u, ok := a.api.CurrentUser(); ok {
		s = u.UserName + " " + s
	}
	return "(" + s + ")"
}

// noteAvailability flips to offline mode when err says the server is down.
func (a *App) noteAvailability(err error) {
	if err == nil {
		a.setMode(ModeOnline)
		return
	}
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
	}
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()
			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}
		case <-ctx.Done():
			return
		}
	}
}
