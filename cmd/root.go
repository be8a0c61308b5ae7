package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attendance-log",
	Short: "A durable attendance capture service",
	Long: `Attendance Log records employee check-ins - an employee id, a photo
and a geolocation at a point in time. Photos are stored as file-backed
blobs, metadata lives in PostgreSQL, and every record can be retrieved
later in bulk through the HTTP API.`,
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
