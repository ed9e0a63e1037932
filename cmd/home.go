package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-memories/internal/config"
	"github.com/kozaktomas/photo-memories/internal/memories/vacation"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home location detection uses",
	Long: `Prints the home anchor that away-day classification measures against.
When HOME_LAT and HOME_LON are set the configured anchor wins; otherwise
home is inferred from where daylight photos concentrate over time.`,
	RunE: runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if configured := cfg.Home.Home(); configured != nil {
		fmt.Println("Home (configured):")
		printHomeDetails(configured.Point.Lat, configured.Point.Lon, configured.RadiusKm, configured.CountryCode)
		return nil
	}

	library, cleanup, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Loading photo library...")
	photos, err := library.Photos(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}

	resolver, err := timezone.NewFinderResolver()
	if err != nil {
		return fmt.Errorf("failed to initialize timezone resolver: %w", err)
	}

	locator := vacation.HomeLocator{
		Resolver: resolver,
		Catalog:  library.Catalog(),
		Opts:     cfg.Detection.Home,
	}
	home := locator.DetermineHome(photos)
	if home == nil {
		return errors.New("not enough location-bearing photos to infer a home location")
	}

	fmt.Printf("Home (inferred from %d photos):\n", len(photos))
	printHomeDetails(home.Point.Lat, home.Point.Lon, home.RadiusKm, home.CountryCode)
	return nil
}

func printHomeDetails(lat, lon, radiusKm float64, country string) {
	fmt.Printf("  Position: %.5f, %.5f\n", lat, lon)
	fmt.Printf("  Radius:   %.1f km\n", radiusKm)
	if country != "" {
		fmt.Printf("  Country:  %s\n", country)
	}
}
