package core

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"rentaldesk/internal/shared"
	"rentaldesk/internal/types"
)

// ImageResolver picks the best image URL for a car. It never fails: every
// tier that cannot produce a match hands over to the next one, and the last
// tier is the static placeholder.
type ImageResolver struct {
	Location types.MediaLocation
	// Media is the filesystem rooted at Location.MediaRoot. A nil Media
	// behaves like an unreadable media root.
	Media fs.FS
}

// NewImageResolver returns a resolver reading the media root from disk.
func NewImageResolver(location types.MediaLocation) ImageResolver {
	location = location.WithDefaults()
	resolver := ImageResolver{Location: location}
	if strings.TrimSpace(location.MediaRoot) != "" {
		resolver.Media = os.DirFS(location.MediaRoot)
	}
	return resolver
}

// Resolve returns the image URL for the car. It is never empty.
func (r ImageResolver) Resolve(query types.CarImageQuery) string {
	return r.Explain(query).URL
}

// Explain runs the cascade and reports which tier produced the URL.
func (r ImageResolver) Explain(query types.CarImageQuery) types.ImageResolution {
	location := r.Location.WithDefaults()

	if name, ok := r.storedImage(query.StoredImagePath); ok {
		return types.ImageResolution{
			URL:   location.MediaURLPrefix + query.StoredImagePath,
			Tier:  types.ResolutionTierStored,
			Match: name,
		}
	}

	candidates := shared.NormalizeImageCandidates(query.RegistrationIdentifier, query.CategoryLabel)
	if len(candidates) == 0 {
		log.Debug().Str("tier", string(types.ResolutionTierExact)).Msg("no registration or category to match against")
	} else if dir, ok := mediaPath(strings.TrimSpace(location.CarsSubdirectory)); !ok {
		log.Debug().Str("dir", location.CarsSubdirectory).Msg("cars directory not addressable under media root")
	} else if names, ok := r.listCarImages(dir); ok {
		if name, ok := matchExact(names, candidates); ok {
			return carImage(location, dir, name, types.ResolutionTierExact)
		}
		if name, ok := matchToken(names, candidates); ok {
			return carImage(location, dir, name, types.ResolutionTierToken)
		}
		log.Debug().Strs("candidates", candidates).Int("files", len(names)).Msg("no car image matched")
	}

	return types.ImageResolution{
		URL:  location.PlaceholderURL(),
		Tier: types.ResolutionTierPlaceholder,
	}
}

// carImage joins the cleaned cars directory and the matched file name.
func carImage(location types.MediaLocation, dir string, name string, tier types.ResolutionTier) types.ImageResolution {
	return types.ImageResolution{
		URL:   location.MediaURLPrefix + dir + "/" + name,
		Tier:  tier,
		Match: name,
	}
}

func (r ImageResolver) storedImage(stored string) (string, bool) {
	if strings.TrimSpace(stored) == "" {
		return "", false
	}
	name, ok := mediaPath(stored)
	if !ok || r.Media == nil {
		log.Debug().Str("image", stored).Msg("stored image not addressable under media root")
		return "", false
	}
	if _, err := fs.Stat(r.Media, name); err != nil {
		log.Debug().Err(err).Str("image", stored).Msg("stored image not found")
		return "", false
	}
	return name, true
}

// listCarImages returns the sorted file names directly inside dir, an
// fs.FS name. Unlike a plain directory listing, subdirectories are left
// out.
func (r ImageResolver) listCarImages(dir string) ([]string, bool) {
	if r.Media == nil {
		return nil, false
	}
	entries, err := fs.ReadDir(r.Media, dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("car image directory unavailable")
		return nil, false
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, true
}

func matchExact(names []string, candidates []string) (string, bool) {
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, candidate := range candidates {
			if strings.Contains(lower, candidate) {
				return name, true
			}
		}
	}
	return "", false
}

func matchToken(names []string, candidates []string) (string, bool) {
	tokens := make([][]string, len(candidates))
	for i, candidate := range candidates {
		tokens[i] = shared.CandidateTokens(candidate)
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, words := range tokens {
			for _, word := range words {
				if strings.Contains(lower, word) {
					return name, true
				}
			}
		}
	}
	return "", false
}

// mediaPath converts a media-relative path into an fs.FS name. Absolute
// paths and paths escaping the root are rejected. Surrounding whitespace is
// kept: it is part of the file name the record points at.
func mediaPath(value string) (string, bool) {
	name := path.Clean(filepath.ToSlash(value))
	if name == "." || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
