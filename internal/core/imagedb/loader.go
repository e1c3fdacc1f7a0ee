package imagedb

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/pkg/concurrent"
	"github.com/zeusync/arscene/pkg/sequence"
)

// ImageModel describes a reference image to register.
type ImageModel struct {
	Name        string  `yaml:"name"`
	Path        string  `yaml:"path"`
	WidthMeters float64 `yaml:"width_m"`
}

// decodeWorkers bounds concurrent image decoding during bootstrap.
const decodeWorkers = 4

// LoadImage decodes a reference image from disk. Formats registered with
// the image package are tried first, then WebP.
func LoadImage(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return img, nil
}

// Bootstrap builds the session's image database. An existing database that
// already holds images is extended; otherwise a fresh one is created.
//
// Images are decoded concurrently and registered in model order. Images
// that fail are skipped; their errors are joined into the returned error,
// which comes alongside a usable database.
func Bootstrap(ctx context.Context, existing *Database, models []ImageModel, logger log.Log) (*Database, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	db := existing
	if db == nil || db.Len() == 0 {
		db = New()
	}

	decoded := concurrent.ParallelMap(ctx, sequence.From(models), decodeWorkers,
		func(_ context.Context, m ImageModel) (image.Image, error) {
			return LoadImage(m.Path)
		})

	var errs error
	for i, m := range models {
		if err := decoded[i].Err; err != nil {
			errs = errors.Join(errs, fmt.Errorf("image %q: %w", m.Name, err))
			continue
		}
		idx, err := db.AddImage(m.Name, decoded[i].Value, m.WidthMeters)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("image %q: %w", m.Name, err))
			continue
		}
		logger.Debug("reference image registered",
			log.String("name", m.Name),
			log.Int("index", idx),
			log.Float64("width_m", m.WidthMeters),
		)
	}

	if errs != nil {
		logger.Warn("image database incomplete", log.Int("registered", db.Len()), log.Error(errs))
	} else {
		logger.Info("image database ready", log.Int("images", db.Len()), log.Strings("names", db.Names()))
	}
	return db, errs
}
