package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-memories/internal/config"
	"github.com/kozaktomas/photo-memories/internal/database/mariadb"
	"github.com/kozaktomas/photo-memories/internal/holiday"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/memories/vacation"
	"github.com/kozaktomas/photo-memories/internal/monitor"
	"github.com/kozaktomas/photo-memories/internal/photoprism"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

// photoLibrary is a photo source that also knows its place catalog. Both the
// PhotoPrism API source and the direct database source satisfy it.
type photoLibrary interface {
	memories.PhotoSource
	Catalog() memories.PlaceCatalog
}

// Photo library source modes for openLibraryMode.
const (
	sourceAuto = "auto"
	sourceAPI  = "api"
	sourceDB   = "db"
)

// openLibrary connects to the photo library in auto mode: a configured
// PHOTOPRISM_DATABASE_URL wins over the HTTP API because the direct database
// path sees richer place metadata and avoids per-subject search queries.
func openLibrary(cfg *config.Config) (photoLibrary, func(), error) {
	return openLibraryMode(cfg, sourceAuto)
}

func openLibraryMode(cfg *config.Config, mode string) (photoLibrary, func(), error) {
	useDB := cfg.PhotoPrism.DatabaseURL != ""
	switch mode {
	case sourceAuto:
	case sourceDB:
		if !useDB {
			return nil, nil, errors.New("--source db requires the PHOTOPRISM_DATABASE_URL environment variable")
		}
	case sourceAPI:
		useDB = false
	default:
		return nil, nil, fmt.Errorf("unknown source %q (want auto, api or db)", mode)
	}

	if useDB {
		pool, err := mariadb.NewPool(cfg.PhotoPrism.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PhotoPrism database: %w", err)
		}
		return mariadb.NewSource(pool), func() { _ = pool.Close() }, nil
	}

	if cfg.PhotoPrism.URL == "" {
		return nil, nil, errors.New("PHOTOPRISM_URL or PHOTOPRISM_DATABASE_URL environment variable is required")
	}

	pp, err := photoprism.NewPhotoPrism(cfg.PhotoPrism.URL, cfg.PhotoPrism.Username, cfg.PhotoPrism.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PhotoPrism: %w", err)
	}
	return photoprism.NewSource(pp), func() { pp.Logout() }, nil
}

// buildStrategy wires the vacation strategy from config and the library's
// place catalog.
func buildStrategy(cfg *config.Config, catalog memories.PlaceCatalog, emitter monitor.Emitter) (*vacation.ClusterStrategy, error) {
	resolver, err := timezone.NewFinderResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize timezone resolver: %w", err)
	}

	var holidays holiday.Resolver
	if cfg.Memories.Region != "" {
		holidays = holiday.NewCalendarResolver(cfg.Memories.Region)
	}

	return vacation.New(cfg.Detection, vacation.Deps{
		Resolver:       resolver,
		Catalog:        catalog,
		Holidays:       holidays,
		Emitter:        emitter,
		ConfiguredHome: cfg.Home.Home(),
		Lang:           cfg.Memories.Lang,
	}), nil
}
