package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

// Hash returns a hex SHA-256 of the scene's canonical JSON form.
func (s *Scene) Hash() (string, error) {
	return digest(s)
}

// SlideHash identifies slide i together with the canvas it is drawn on, so
// editing one slide leaves the others' cache entries valid.
func (s *Scene) SlideHash(i int) (string, error) {
	sl, err := s.Slide(i)
	if err != nil {
		return "", err
	}
	return digest(struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Slide  Slide   `json:"slide"`
	}{s.Width, s.Height, sl})
}

func digest(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidScene, err, "hash scene")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
