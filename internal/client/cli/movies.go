package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/movieapi/internal/client/client"
	"github.com/dmitrijs2005/movieapi/internal/client/models"
	"github.com/dmitrijs2005/movieapi/internal/filex"
	"github.com/dmitrijs2005/movieapi/internal/netx"
	"github.com/samber/lo"
)

const maxPosterBytes = 5 << 20

var (
	uploadToPresignedURL = netx.UploadToPresignedURL
	readUpload           = filex.ReadUpload
)

var errUsage = errors.New("usage error")

// Movies lists the catalog. When the server is unreachable the cached copy
// is shown instead.
func (a *App) Movies(ctx context.Context) error {
	list, err := a.api.Movies(ctx)
	a.noteAvailability(err)

	switch {
	case err == nil:
		if a.cache != nil {
			if cerr := a.cache.ReplaceAll(ctx, list); cerr != nil {
				fmt.Fprintln(a.out, "Warning: could not update cache:", cerr)
			}
		}
	case errors.Is(err, client.ErrUnavailable) && a.cache != nil:
		cached, cerr := a.cache.GetAll(ctx)
		if cerr != nil {
			return cerr
		}
		syncedAt, _ := a.cache.SyncedAt(ctx)
		if syncedAt.IsZero() {
			fmt.Fprintln(a.out, "Server unavailable and nothing cached yet")
			return err
		}
		fmt.Fprintf(a.out, "Server unavailable, showing catalog cached at %s\n", syncedAt.Local().Format("2006-01-02 15:04"))
		list = cached
	default:
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	a.printMovies(list)
	return nil
}

func (a *App) printMovies(list []models.Movie) {
	var favorites []string
	if u, ok := a.api.CurrentUser(); ok {
		favorites = u.FavoriteMovies
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYEAR\tDIRECTOR\tFAV")
	for _, m := range list {
		fav := ""
		if lo.Contains(favorites, m.ID) {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", m.ID, m.Title, m.Year, m.Director, fav)
	}
	w.Flush()
}

// Favorite adds the movie given in args[0] to the user's favorites.
func (a *App) Favorite(ctx context.Context, args []string) error {
	return a.changeFavorite(ctx, args, a.api.AddFavorite, "Added to favorites")
}

// Unfavorite removes the movie given in args[0] from the user's favorites.
func (a *App) Unfavorite(ctx context.Context, args []string) error {
	return a.changeFavorite(ctx, args, a.api.RemoveFavorite, "Removed from favorites")
}

type favoriteFn func(ctx context.Context, username, movieID string) (*models.User, error)

func (a *App) changeFavorite(ctx context.Context, args []string, fn favoriteFn, done string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: fav|unfav <movie-id>")
		return errUsage
	}
	cur, ok := a.api.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return client.ErrUnauthorized
	}

	u, err := fn(ctx, cur.UserName, args[0])
	a.noteAvailability(err)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	fmt.Fprintf(a.out, "%s (%d total)\n", done, len(u.FavoriteMovies))
	return nil
}

// Poster uploads the image file args[1] as the poster of movie args[0].
func (a *App) Poster(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: poster <movie-id> <image-file>")
		return errUsage
	}

	data, contentType, err := readUpload(args[1], maxPosterBytes)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	up, err := a.api.PosterUploadURL(ctx, args[0])
	a.noteAvailability(err)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	if err := uploadToPresignedURL(ctx, up.URL, contentType, data); err != nil {
		fmt.Fprintln(a.out, "Upload failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Poster uploaded (%d bytes)\n", len(data))
	return nil
}
