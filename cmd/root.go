package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-review",
	Short: "Face review workspace for sports photo galleries",
	Long: `Face Review is the companion service for reviewing face recognition
results in a sports photo gallery. It talks to the recognition service for
detection and clustering, and to the gallery API for persistence, and serves
the browser workspace used to confirm who is who on every photo.`,
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
