package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"backcast/internal/strategy"
	"backcast/internal/strategy/builtins"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available strategies",
	Run: func(cmd *cobra.Command, args []string) {
		registry := strategy.NewRegistry()
		builtins.Register(registry)
		for _, name := range registry.List() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
