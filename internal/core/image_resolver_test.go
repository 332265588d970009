package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk/internal/types"
	"rentaldesk/tests/testutil"
)

const placeholderURL = "/static/app/images/default_car.png"

func newTestResolver(t *testing.T, files ...string) ImageResolver {
	t.Helper()
	root := testutil.MediaTree(t, files...)
	return NewImageResolver(types.MediaLocation{MediaRoot: root})
}

// listingErrorFS serves Open from the wrapped filesystem but refuses to
// list any directory.
type listingErrorFS struct {
	fs.FS
	err error
}

func (f listingErrorFS) ReadDir(string) ([]fs.DirEntry, error) {
	return nil, f.err
}

// statErrorFS refuses every Stat call.
type statErrorFS struct {
	fs.FS
}

func (f statErrorFS) Stat(name string) (fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
}

func TestResolveStoredImageExists(t *testing.T) {
	resolver := newTestResolver(t, "cars/DL01AB0001.jpg")
	got := resolver.Explain(types.CarImageQuery{StoredImagePath: "cars/DL01AB0001.jpg"})
	want := types.ImageResolution{
		URL:   "/media/cars/DL01AB0001.jpg",
		Tier:  types.ResolutionTierStored,
		Match: "cars/DL01AB0001.jpg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected resolution (-want +got):\n%s", diff)
	}
}

func TestResolveStoredImageWinsOverScanMatches(t *testing.T) {
	resolver := newTestResolver(t,
		"uploads/custom.png",
		"cars/dl01ab0002.jpg",
		"cars/tata_sumo_front.jpg",
	)
	got := resolver.Resolve(types.CarImageQuery{
		StoredImagePath:        "uploads/custom.png",
		RegistrationIdentifier: "DL01AB0002",
		CategoryLabel:          "Tata Sumo",
	})
	assert.Equal(t, "/media/uploads/custom.png", got)
}

func TestResolveDanglingStoredImageFallsBackToRegistration(t *testing.T) {
	resolver := newTestResolver(t, "cars/dl01ab0001_side.jpg", "cars/other.jpg")
	got := resolver.Explain(types.CarImageQuery{
		StoredImagePath:        "cars/missing.jpg",
		RegistrationIdentifier: "DL01AB0001",
	})
	assert.Equal(t, types.ResolutionTierExact, got.Tier)
	assert.Equal(t, "/media/cars/dl01ab0001_side.jpg", got.URL)
}

func TestResolveCategoryNormalization(t *testing.T) {
	resolver := newTestResolver(t, "cars/ambassador.jpg", "cars/tata_sumo_front.jpg")
	got := resolver.Explain(types.CarImageQuery{CategoryLabel: "Tata Sumo"})
	assert.Equal(t, types.ResolutionTierExact, got.Tier)
	assert.Equal(t, "/media/cars/tata_sumo_front.jpg", got.URL)
}

func TestResolveFilenameCaseIgnored(t *testing.T) {
	resolver := newTestResolver(t, "cars/DL01AB0003.JPG")
	got := resolver.Resolve(types.CarImageQuery{RegistrationIdentifier: "dl01ab0003"})
	assert.Equal(t, "/media/cars/DL01AB0003.JPG", got)
}

func TestResolveWordLevelFallback(t *testing.T) {
	resolver := newTestResolver(t, "cars/armada_2.png", "cars/omni.png")
	got := resolver.Explain(types.CarImageQuery{
		RegistrationIdentifier: "DL01AB0005",
		CategoryLabel:          "Mahindra Armada",
	})
	want := types.ImageResolution{
		URL:   "/media/cars/armada_2.png",
		Tier:  types.ResolutionTierToken,
		Match: "armada_2.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected resolution (-want +got):\n%s", diff)
	}
}

func TestResolveExactTierBeatsEarlierTokenMatch(t *testing.T) {
	// armada.png sorts first and would win tier 3, but tier 2 runs first.
	resolver := newTestResolver(t, "cars/armada.png", "cars/zz_mahindra_armada.png")
	got := resolver.Explain(types.CarImageQuery{CategoryLabel: "Mahindra Armada"})
	assert.Equal(t, types.ResolutionTierExact, got.Tier)
	assert.Equal(t, "zz_mahindra_armada.png", got.Match)
}

func TestResolveFirstFilenameInSortedOrderWins(t *testing.T) {
	resolver := newTestResolver(t, "cars/c_sumo.jpg", "cars/a_sumo.jpg", "cars/b_sumo.jpg")
	got := resolver.Resolve(types.CarImageQuery{CategoryLabel: "Sumo"})
	assert.Equal(t, "/media/cars/a_sumo.jpg", got)
}

func TestResolveTokenTierIteratesFilenamesFirst(t *testing.T) {
	// "maruti" is the first token but the file matching only "esteem"
	// sorts ahead of the one matching "maruti".
	resolver := newTestResolver(t, "cars/esteem_blue.jpg", "cars/maruti_logo.jpg")
	got := resolver.Resolve(types.CarImageQuery{CategoryLabel: "Maruti Esteem"})
	assert.Equal(t, "/media/cars/esteem_blue.jpg", got)
}

func TestResolveSkipsDirectoriesInScan(t *testing.T) {
	resolver := newTestResolver(t, "cars/tata_sumo/nested.jpg", "cars/tata_sumo_rear.jpg")
	got := resolver.Resolve(types.CarImageQuery{CategoryLabel: "Tata Sumo"})
	assert.Equal(t, "/media/cars/tata_sumo_rear.jpg", got)
}

func TestResolveTerminalFallback(t *testing.T) {
	resolver := newTestResolver(t)
	got := resolver.Explain(types.CarImageQuery{})
	want := types.ImageResolution{URL: placeholderURL, Tier: types.ResolutionTierPlaceholder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected resolution (-want +got):\n%s", diff)
	}
}

func TestResolveEmptyCarsDirectoryFallsBackToPlaceholder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "cars"), 0755))
	resolver := NewImageResolver(types.MediaLocation{MediaRoot: root})
	assert.Equal(t, placeholderURL, resolver.Resolve(types.CarImageQuery{CategoryLabel: "Ambassador"}))
}

func TestResolveNoMatchFallsBackToPlaceholder(t *testing.T) {
	resolver := newTestResolver(t, "cars/ambassador.jpg")
	got := resolver.Explain(types.CarImageQuery{RegistrationIdentifier: "KA05ZZ9999", CategoryLabel: "Tempo"})
	assert.Equal(t, types.ResolutionTierPlaceholder, got.Tier)
	assert.Equal(t, placeholderURL, got.URL)
}

func TestResolveListingFailureReturnsPlaceholder(t *testing.T) {
	root := testutil.MediaTree(t, "cars/tata_sumo.jpg")
	resolver := NewImageResolver(types.MediaLocation{MediaRoot: root})
	resolver.Media = listingErrorFS{FS: resolver.Media, err: fs.ErrPermission}

	var got string
	require.NotPanics(t, func() {
		got = resolver.Resolve(types.CarImageQuery{CategoryLabel: "Tata Sumo"})
	})
	assert.Equal(t, placeholderURL, got)
}

func TestResolveStatFailureFallsThrough(t *testing.T) {
	resolver := NewImageResolver(types.MediaLocation{MediaRoot: "/unused"})
	resolver.Media = statErrorFS{FS: fstest.MapFS{
		"cars/stored.jpg":     {Data: []byte("x")},
		"cars/dl01ab0004.jpg": {Data: []byte("x")},
	}}
	got := resolver.Explain(types.CarImageQuery{
		StoredImagePath:        "cars/stored.jpg",
		RegistrationIdentifier: "DL01AB0004",
	})
	assert.Equal(t, types.ResolutionTierExact, got.Tier)
	assert.Equal(t, "/media/cars/dl01ab0004.jpg", got.URL)
}

func TestResolveTotality(t *testing.T) {
	queries := []types.CarImageQuery{
		{},
		{StoredImagePath: "   "},
		{StoredImagePath: "../etc/passwd"},
		{StoredImagePath: "/etc/passwd"},
		{StoredImagePath: "."},
		{RegistrationIdentifier: "  ", CategoryLabel: "\t"},
		{RegistrationIdentifier: "DL01AB0001", CategoryLabel: "Tata Sumo"},
	}
	locations := []types.MediaLocation{
		{},
		{MediaRoot: "/nonexistent/media/root"},
		{MediaRoot: testutil.MediaTree(t, "cars/random.jpg")},
		{MediaRoot: testutil.MediaTree(t, "cars/random.jpg"), CarsSubdirectory: "../escape"},
	}
	for _, location := range locations {
		resolver := NewImageResolver(location)
		for _, query := range queries {
			assert.NotEmpty(t, resolver.Resolve(query), "location=%+v query=%+v", location, query)
		}
	}
}

func TestResolveRejectsPathsOutsideMediaRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "media")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.jpg"), []byte("x"), 0644))

	resolver := NewImageResolver(types.MediaLocation{MediaRoot: root})
	got := resolver.Explain(types.CarImageQuery{StoredImagePath: "../secret.jpg"})
	assert.Equal(t, types.ResolutionTierPlaceholder, got.Tier)
}

func TestResolveStoredImageWithSurroundingWhitespaceFallsThrough(t *testing.T) {
	resolver := newTestResolver(t, "cars/x.jpg", "cars/dl01ab0002_side.jpg")
	for _, stored := range []string{" cars/x.jpg", "cars/x.jpg ", "\tcars/x.jpg"} {
		t.Run(stored, func(t *testing.T) {
			got := resolver.Explain(types.CarImageQuery{
				StoredImagePath:        stored,
				RegistrationIdentifier: "DL01AB0002",
			})
			want := types.ImageResolution{
				URL:   "/media/cars/dl01ab0002_side.jpg",
				Tier:  types.ResolutionTierExact,
				Match: "dl01ab0002_side.jpg",
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected resolution (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWhitespaceOnlyStoredImageIsUnset(t *testing.T) {
	resolver := newTestResolver(t, "cars/tata_sumo_front.jpg")
	got := resolver.Explain(types.CarImageQuery{StoredImagePath: "   ", CategoryLabel: "Tata Sumo"})
	assert.Equal(t, types.ResolutionTierExact, got.Tier)
	assert.Equal(t, "/media/cars/tata_sumo_front.jpg", got.URL)
}

func TestResolveCleansCarsDirectoryInURL(t *testing.T) {
	root := testutil.MediaTree(t, "cars/tata_sumo_front.jpg", "fleet/new/armada_2.png")
	tests := []struct {
		name     string
		dir      string
		category string
		expected string
	}{
		{name: "trailing slash", dir: "cars/", category: "Tata Sumo", expected: "/media/cars/tata_sumo_front.jpg"},
		{name: "dot segment", dir: "./cars", category: "Tata Sumo", expected: "/media/cars/tata_sumo_front.jpg"},
		{name: "nested with slash", dir: "fleet/new/", category: "Mahindra Armada", expected: "/media/fleet/new/armada_2.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := NewImageResolver(types.MediaLocation{MediaRoot: root, CarsSubdirectory: tc.dir})
			assert.Equal(t, tc.expected, resolver.Resolve(types.CarImageQuery{CategoryLabel: tc.category}))
		})
	}
}

func TestResolveUsesConfiguredPrefixes(t *testing.T) {
	root := testutil.MediaTree(t, "fleet/omni_white.png")
	resolver := NewImageResolver(types.MediaLocation{
		MediaRoot:        root,
		MediaURLPrefix:   "https://cdn.example.com/m/",
		StaticURLPrefix:  "https://cdn.example.com/s/",
		CarsSubdirectory: "fleet",
		PlaceholderPath:  "img/none.png",
	})
	assert.Equal(t, "https://cdn.example.com/m/fleet/omni_white.png",
		resolver.Resolve(types.CarImageQuery{CategoryLabel: "Maruti Omni"}))
	assert.Equal(t, "https://cdn.example.com/s/img/none.png",
		resolver.Resolve(types.CarImageQuery{CategoryLabel: "Tempo"}))
}

func TestResolveConcurrentCalls(t *testing.T) {
	resolver := newTestResolver(t, "cars/tata_sumo_front.jpg", "cars/armada_2.png")
	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			label := "Tata Sumo"
			if i%2 == 1 {
				label = "Mahindra Armada"
			}
			results[i] = resolver.Resolve(types.CarImageQuery{CategoryLabel: label})
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		want := "/media/cars/tata_sumo_front.jpg"
		if i%2 == 1 {
			want = "/media/cars/armada_2.png"
		}
		assert.Equal(t, want, got)
	}
}
