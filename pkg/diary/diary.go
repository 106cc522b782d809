package diary

import "context"

// UnknownGlyph is rendered when a mood or weather value is absent.
const UnknownGlyph = "❓"

var (
	MoodOptions    = []string{"😊", "😐", "😢"}
	WeatherOptions = []string{"☀️", "☁️", "🌧️"}
)

// Entry is one diary post. Mood and Weather are optional; the empty string
// means "not set" and displays as UnknownGlyph.
type Entry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
	Mood     string  `json:"mood,omitempty"`
	Weather  string  `json:"weather,omitempty"`
}

// MoodGlyph returns the mood or the placeholder glyph when unset.
func (e Entry) MoodGlyph() string {
	if e.Mood == "" {
		return UnknownGlyph
	}
	return e.Mood
}

// WeatherGlyph returns the weather or the placeholder glyph when unset.
func (e Entry) WeatherGlyph() string {
	if e.Weather == "" {
		return UnknownGlyph
	}
	return e.Weather
}

// ImageUpload carries raw image bytes attached to a create or update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Repository is the record of truth for diary posts. Exactly one variant is
// active: the local one (record store, images embedded as data URLs) or the
// remote one (database rows scoped by the authenticated user, images uploaded
// to object storage).
type Repository interface {
	Latest(ctx context.Context) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Create(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error)
	Update(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error)
	Delete(ctx context.Context, id string) error
}
