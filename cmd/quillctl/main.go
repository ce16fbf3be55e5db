// Command quillctl provides operator utilities for the quill database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "quillctl",
		Short:        "quill operator tool",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		postsCmd(),
		usersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
