// Package models holds the client-side view of API resources.
package models

type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	ImagePath   string `json:"image_path,omitempty"`
	Featured    bool   `json:"featured"`
}

type User struct {
	ID             string   `json:"id"`
	UserName       string   `json:"username"`
	Email          string   `json:"email"`
	Birthday       string   `json:"birthday,omitempty"`
	FavoriteMovies []string `json:"favorite_movies"`
}
