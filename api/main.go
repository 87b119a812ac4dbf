package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Live history of container movements",
	Long: `tracker keeps a live, date-filtered view of container movements from the
movements collection and serves it over HTTP with CSV export, photo attachments
and deletion.`,
	SilenceUsage: true,
}

// @title Container Tracker API
// @version 1.0
// @description Live history of container movements: date-filtered views, CSV export, photos and deletion.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./tracker.yaml)")
	rootCmd.AddCommand(serveCmd, exportCmd, tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
