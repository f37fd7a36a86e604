package ids

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	length   = 10
)

// New returns a 10-character alphanumeric identifier.
func New() string {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		panic(err)
	}
	return id
}
