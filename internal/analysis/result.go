package analysis

// Result is the analysis payload for a single image. It is always
// well-shaped; failed analysis calls are reported through a marker string in
// the description, never through an error.
type Result struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	NSFW        bool     `json:"nsfw"`
}

// Marker strings prefixed into the description when a live analysis call
// falls back to the placeholder payload.
const (
	MarkerReadFailed  = "[DEV] Unable to read image."
	MarkerUnreachable = "[DEV] AI service unreachable."
	MarkerUnexpected  = "[DEV] Unexpected AI response."
)

const placeholderDescription = "[DEV] A placeholder description of a cat."

var placeholderTags = []string{"test", "cat", "1girl", "indoors"}

// Placeholder returns the fixed stand-in payload used in mock mode and as
// the fallback for every live-mode failure.
func Placeholder() Result {
	return Result{
		Description: placeholderDescription,
		Tags:        append([]string(nil), placeholderTags...),
		NSFW:        false,
	}
}

func placeholderWith(marker string) Result {
	result := Placeholder()
	result.Description = marker
	return result
}
