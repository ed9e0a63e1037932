package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-memories",
	Short: "Detect vacations and trips in a PhotoPrism library",
	Long: `Photo Memories connects to a PhotoPrism instance and groups photos
into memory clusters: vacations, short trips and day trips. Detection works
from capture timestamps, GPS positions and place metadata alone; no photo
content ever leaves your library.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
