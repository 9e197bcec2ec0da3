package handlers

import (
	"net/http"

	"github.com/spf13/afero"
)

// AvatarsHandler serves the avatar images referenced by Person records from
// a local directory, rooted so path escapes cannot leave it.
type AvatarsHandler struct {
	fs afero.Fs
}

// NewAvatarsHandler creates an avatars handler rooted at dir.
func NewAvatarsHandler(dir string) *AvatarsHandler {
	return &AvatarsHandler{
		fs: afero.NewBasePathFs(afero.NewOsFs(), dir),
	}
}

// Handler returns the file server for the avatar directory, to be mounted
// under /avatars/.
func (h *AvatarsHandler) Handler() http.Handler {
	return http.StripPrefix("/avatars/", http.FileServer(afero.NewHttpFs(h.fs)))
}
