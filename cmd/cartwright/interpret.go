package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperengineering/cartwright/internal/nlp"
	"github.com/spf13/cobra"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [command text]",
	Short: "Interpret a shopping command without running the server",
	Long:  "Parse a free-text shopping command and print the extracted intent, items, quantity, and category as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInterpret,
}

func runInterpret(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	result := nlp.NewProcessor().Interpret(text)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
