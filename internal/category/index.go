package category

import (
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// ReferencePair is one (path, code) record of the category reference table.
type ReferencePair struct {
	Path string
	Code string
}

// Index is the fitted category reference snapshot shared read-only across a
// run: the exact-match dictionary plus the fuzzy n-gram vector space.
type Index struct {
	PathToCode map[string]string
	Paths      []string
	Codes      []string
	Vectorizer *Vectorizer
	Vectors    []SparseVector
	BuiltAt    time.Time
}

// BuildIndex fits the exact dictionary and vector space over the reference
// pairs. Duplicate paths keep the first code encountered.
func BuildIndex(pairs []ReferencePair, minN, maxN int) *Index {
	idx := &Index{
		PathToCode: make(map[string]string, len(pairs)),
		BuiltAt:    time.Now(),
	}

	for _, p := range pairs {
		if _, ok := idx.PathToCode[p.Path]; ok {
			continue
		}
		idx.PathToCode[p.Path] = p.Code
		idx.Paths = append(idx.Paths, p.Path)
		idx.Codes = append(idx.Codes, p.Code)
	}

	idx.Vectorizer = FitVectorizer(idx.Paths, minN, maxN)
	idx.Vectors = make([]SparseVector, len(idx.Paths))
	for i, path := range idx.Paths {
		idx.Vectors[i] = idx.Vectorizer.Transform(path)
	}

	return idx
}

// Empty reports whether the index holds no reference entries, which happens
// when the reference table could not be read.
func (idx *Index) Empty() bool {
	return idx == nil || len(idx.Paths) == 0
}

// StoreOptions configures how the reference index is loaded and cached.
type StoreOptions struct {
	ReferencePath string
	ReadReference func(path string) ([]ReferencePair, error)
	CacheDir      string
	CacheTTL      time.Duration
	MinNGram      int
	MaxNGram      int
}

// LoadIndex returns the reference index for a run: a fresh-enough cached
// snapshot when one exists, otherwise a rebuild from the reference table.
// Cache problems of any kind are treated as a miss. A missing or unreadable
// reference table degrades to an empty index rather than failing the run.
func LoadIndex(opts StoreOptions) *Index {
	cachePath := opts.cachePath()

	if cachePath != "" {
		if idx, err := readCache(cachePath, opts.CacheTTL); err == nil {
			log.Debug().Str("cache", cachePath).Time("built_at", idx.BuiltAt).Msg("loaded category index from cache")
			return idx
		} else if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("cache", cachePath).Msg("category index cache unusable, rebuilding")
		}
	}

	pairs, err := opts.ReadReference(opts.ReferencePath)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.ReferencePath).Msg("category reference table unreadable, all lookups will fall back to the unknown code")
		return BuildIndex(nil, opts.MinNGram, opts.MaxNGram)
	}

	idx := BuildIndex(pairs, opts.MinNGram, opts.MaxNGram)
	log.Info().Int("entries", len(idx.Paths)).Msg("built category reference index")

	if cachePath != "" {
		if err := writeCache(cachePath, idx); err != nil {
			log.Warn().Err(err).Str("cache", cachePath).Msg("failed to write category index cache")
		}
	}

	return idx
}

// cachePath keys the artifact on a content hash of the reference table, so
// concurrent runs over different reference data never clobber each other.
func (o StoreOptions) cachePath() string {
	if o.CacheDir == "" {
		return ""
	}

	data, err := os.ReadFile(o.ReferencePath)
	if err != nil {
		return filepath.Join(o.CacheDir, "category_index.gob")
	}
	sum := sha1.Sum(data)
	return filepath.Join(o.CacheDir, fmt.Sprintf("category_index_%s.gob", hex.EncodeToString(sum[:8])))
}

func readCache(path string, ttl time.Duration) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var idx Index
	if err := gob.NewDecoder(f).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	if idx.BuiltAt.IsZero() || time.Since(idx.BuiltAt) > ttl {
		return nil, fmt.Errorf("cache expired (built %s)", idx.BuiltAt)
	}
	if idx.Vectorizer == nil {
		return nil, fmt.Errorf("cache missing vectorizer state")
	}
	return &idx, nil
}

// writeCache replaces the artifact atomically: write to a temp file in the
// same directory, then rename over the target.
func writeCache(path string, idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(idx); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
