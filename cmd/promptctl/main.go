// Command promptctl inspects the prompt templates and the model output
// cleaner without a running server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "promptctl",
		Short: "Render prompt templates and clean model output",
		Long: `promptctl works with the prompts sent to the LLM.

  promptctl list                                   # list templates and their variables
  promptctl render ordering --vars vars.yaml       # render a template
  promptctl render image_prompt --set dish_name=Pho
  promptctl clean < reply.txt                      # clean a raw model reply`,
		SilenceUsage: true,
	}

	root.AddCommand(newListCmd(), newRenderCmd(), newCleanCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
