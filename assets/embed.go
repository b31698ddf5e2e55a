// Package assets bundles the default dictionary into the binary so the game
// runs even when no WORDS_FILE is configured.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.txt
var FS embed.FS

// DefaultWordsName is the embedded dictionary file name.
const DefaultWordsName = "words.txt"

// OpenWords opens the embedded default dictionary.
func OpenWords() (fs.File, error) {
	return FS.Open(DefaultWordsName)
}
