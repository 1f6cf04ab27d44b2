package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/piwi3910/ProxySheet/internal/model"
	"golang.org/x/sync/errgroup"
)

// RawImage is an input image before classification.
type RawImage struct {
	Name string
	Data []byte
}

// LoadOptions controls how input images are read and filtered.
type LoadOptions struct {
	Concurrency int    // Parallel file reads; 0 = number of CPUs
	Convert     bool   // Transcode WebP/BMP/TIFF/GIF to PNG instead of skipping
	Progress    func() // Called once per file read; must be safe for concurrent use
}

// LoadResult holds the placeable images and the warnings for skipped ones.
type LoadResult struct {
	Images   []model.ImageRecord
	Warnings []string
}

// imageExts lists the file extensions picked up when expanding a directory.
var imageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tif", ".tiff", ".gif"}

// ExpandPaths turns the given files and directories into an ordered list of
// image files. Directories contribute their image files in name order; they
// are not walked recursively. Plain files are kept as given.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if slices.Contains(imageExts, ext) {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			paths = append(paths, filepath.Join(arg, name))
		}
	}
	return paths, nil
}

// LoadImages reads every path concurrently and returns the placeable images in
// the order of paths. A path listed more than once is read once. Read errors
// abort the load; unsupported encodings only produce warnings.
func LoadImages(ctx context.Context, paths []string, opts LoadOptions) (LoadResult, error) {
	unique := make(map[string]int)
	var order []string
	for _, p := range paths {
		if _, seen := unique[p]; !seen {
			unique[p] = len(order)
			order = append(order, p)
		}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	contents := make([][]byte, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read image %s: %w", path, err)
			}
			contents[i] = data
			if opts.Progress != nil {
				opts.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}

	raw := make([]RawImage, len(paths))
	for i, p := range paths {
		raw[i] = RawImage{Name: p, Data: contents[unique[p]]}
	}
	return FromBytes(raw, opts.Convert)
}

// FromBytes classifies raw images and keeps the placeable ones in input order.
// Surviving images are indexed contiguously from zero. With convert set,
// known non-JPEG/PNG encodings are transcoded to PNG; a failed transcode is
// fatal because the image can no longer be placed.
func FromBytes(raw []RawImage, convert bool) (LoadResult, error) {
	result := LoadResult{}
	converted := make(map[string][]byte)

	for _, r := range raw {
		enc := Classify(r.Data)
		data := r.Data

		switch {
		case enc.Supported():
		case convert && enc.Convertible():
			png, ok := converted[r.Name]
			if !ok {
				var err error
				png, err = ConvertToPNG(r.Data, enc)
				if err != nil {
					return LoadResult{}, fmt.Errorf("failed to convert %s: %w", r.Name, err)
				}
				converted[r.Name] = png
			}
			data = png
			enc = model.EncodingPNG
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %v %s (%s), skipping", r.Name, model.ErrUnsupportedEncoding, enc, MimeType(r.Data)))
			continue
		}

		result.Images = append(result.Images, model.ImageRecord{
			Index:    len(result.Images),
			Name:     r.Name,
			Encoding: enc,
			Data:     data,
		})
	}

	return result, nil
}
