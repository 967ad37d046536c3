package models

// Movie is a catalog record.
type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	// ImagePath is the object storage key of the poster, if any.
	ImagePath string `json:"image_path,omitempty"`
	Featured  bool   `json:"featured"`
}
