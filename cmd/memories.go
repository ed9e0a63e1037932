package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-memories/internal/config"
	"github.com/kozaktomas/photo-memories/internal/database/postgres"
)

var memoriesCmd = &cobra.Command{
	Use:   "memories",
	Short: "List stored memory clusters",
	Long:  `Lists the memory clusters previously persisted with detect --store.`,
	RunE:  runMemories,
}

func init() {
	rootCmd.AddCommand(memoriesCmd)

	memoriesCmd.Flags().String("algorithm", "", "Only list clusters from this algorithm")
}

func runMemories(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewClusterRepository(pool)
	clusters, err := repo.List(context.Background(), mustGetString(cmd, "algorithm"))
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	if len(clusters) == 0 {
		fmt.Println("No stored memory clusters")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTYPE\tFROM\tTO\tPHOTOS\tCOUNTRIES")
	for _, c := range clusters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID,
			c.Draft.Label,
			c.Draft.Params.Classification,
			c.Draft.Params.StartDate,
			c.Draft.Params.EndDate,
			len(c.Draft.Members),
			strings.Join(c.Draft.Params.Countries, ","),
		)
	}
	w.Flush()
	return nil
}
