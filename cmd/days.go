package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-memories/internal/config"
	"github.com/kozaktomas/photo-memories/internal/memories/vacation"
	"github.com/kozaktomas/photo-memories/internal/timezone"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show per-day summaries of the photo library",
	Long: `Groups the library into local calendar days and prints the per-day
metrics detection works from: distances from home, travel, tourism share
and the away classification. Useful to understand why a trip was or was
not detected.`,
	RunE: runDays,
}

func init() {
	rootCmd.AddCommand(daysCmd)

	daysCmd.Flags().Bool("away-only", false, "Only show days classified as away from home")
}

func runDays(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

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
		Configured: cfg.Home.Home(),
		Resolver:   resolver,
		Catalog:    library.Catalog(),
		Opts:       cfg.Detection.Home,
	}
	home := locator.DetermineHome(photos)
	if home == nil {
		return fmt.Errorf("no home location available; set HOME_LAT and HOME_LON or add photos with GPS")
	}

	builder := vacation.DaySummaryBuilder{
		Resolver:   resolver,
		Catalog:    library.Catalog(),
		Classifier: vacation.PoiClassifier{},
		Opts:       cfg.Detection.Day,
	}
	days, err := builder.Build(photos, *home)
	if err != nil {
		return fmt.Errorf("failed to build day summaries: %w", err)
	}

	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	awayOnly := mustGetBool(cmd, "away-only")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tPHOTOS\tMAX KM\tTRAVEL KM\tTOURISM\tZONE\tAWAY")
	for _, key := range keys {
		day := days[key]
		away := day.BaseAway || day.AwayByDistance
		if awayOnly && !away {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.0f%%\t%s\t%v\n",
			day.DateKey,
			len(day.Members),
			day.MaxDistanceKm,
			day.TravelKm,
			day.TourismRatio()*100,
			day.ZoneName,
			away,
		)
	}
	w.Flush()

	fmt.Printf("\nHome: %.5f, %.5f (radius %.1f km)\n", home.Point.Lat, home.Point.Lon, home.RadiusKm)
	return nil
}
