package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-memories/internal/config"
	"github.com/kozaktomas/photo-memories/internal/database/postgres"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/monitor"
	"github.com/kozaktomas/photo-memories/internal/photoprism"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect vacations and trips in the photo library",
	Long: `Loads the whole photo library, groups photos into calendar days,
finds runs of days spent away from home and classifies them as vacations,
short trips or day trips.`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().String("source", "auto", "Photo library source: auto, api or db")
	detectCmd.Flags().Bool("store", false, "Persist detected clusters to PostgreSQL (requires DATABASE_URL)")
	detectCmd.Flags().Bool("publish", false, "Create a PhotoPrism album per detected cluster")
	detectCmd.Flags().Bool("json", false, "Print detected clusters as JSON")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	library, cleanup, err := openLibraryMode(cfg, mustGetString(cmd, "source"))
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Loading photo library...")
	photos, err := library.Photos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}
	fmt.Printf("Loaded %d photos\n", len(photos))

	strategy, err := buildStrategy(cfg, library.Catalog(), monitor.NewSlogEmitter(nil))
	if err != nil {
		return err
	}

	drafts, err := strategy.Cluster(ctx, photos)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(drafts); err != nil {
			return fmt.Errorf("encoding clusters: %w", err)
		}
	} else {
		printDrafts(drafts)
	}

	if mustGetBool(cmd, "store") {
		if err := storeDrafts(ctx, cfg, drafts); err != nil {
			return err
		}
	}

	if mustGetBool(cmd, "publish") {
		if err := publishDrafts(cfg, drafts); err != nil {
			return err
		}
	}

	return nil
}

func printDrafts(drafts []memories.ClusterDraft) {
	if len(drafts) == 0 {
		fmt.Println("No memory clusters detected")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tTYPE\tFROM\tTO\tDAYS\tSCORE\tPHOTOS")
	for _, d := range drafts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.1f\t%d\n",
			d.Label,
			d.Params.Classification,
			d.Params.StartDate,
			d.Params.EndDate,
			d.Params.AwayDays,
			d.Params.Score,
			len(d.Members),
		)
	}
	w.Flush()
}

func storeDrafts(ctx context.Context, cfg *config.Config, drafts []memories.ClusterDraft) error {
	if cfg.Database.URL == "" {
		return errors.New("--store requires the DATABASE_URL environment variable")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewClusterRepository(pool)
	if err := repo.SaveAll(ctx, drafts); err != nil {
		return fmt.Errorf("failed to store clusters: %w", err)
	}
	fmt.Printf("Stored %d clusters\n", len(drafts))
	return nil
}

func publishDrafts(cfg *config.Config, drafts []memories.ClusterDraft) error {
	if cfg.PhotoPrism.URL == "" {
		return errors.New("--publish requires the PHOTOPRISM_URL environment variable")
	}

	pp, err := photoprism.NewPhotoPrism(cfg.PhotoPrism.URL, cfg.PhotoPrism.Username, cfg.PhotoPrism.Password)
	if err != nil {
		return fmt.Errorf("failed to connect to PhotoPrism: %w", err)
	}
	defer pp.Logout()

	bar := progressbar.Default(int64(len(drafts)), "Publishing albums")
	for _, d := range drafts {
		description := fmt.Sprintf("%s, %s to %s", d.Params.Classification, d.Params.StartDate, d.Params.EndDate)
		album, err := pp.CreateAlbum(d.Label, description)
		if err != nil {
			return fmt.Errorf("failed to create album %q: %w", d.Label, err)
		}
		if err := pp.AddPhotosToAlbum(album.UID, d.Members); err != nil {
			return fmt.Errorf("failed to fill album %q: %w", d.Label, err)
		}
		_ = bar.Add(1)
	}
	fmt.Printf("Published %d albums\n", len(drafts))
	return nil
}
