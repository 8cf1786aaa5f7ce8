package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ygriggs1/llm-chatbot-optimizer/codegen"
	"github.com/ygriggs1/llm-chatbot-optimizer/llm"
	"github.com/ygriggs1/llm-chatbot-optimizer/prompts"
	"github.com/ygriggs1/llm-chatbot-optimizer/textsplitter"
)

var (
	generatePromptFile string
	generateOutputDir  string
	generateStaged     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate code from a prompt",
	Long: `Send the prompt to a chat model and save the generated code under
the output directory. The prompt can be given inline or loaded from a text,
markdown or PDF file with --prompt-file. With --staged the generation is
split into focused stages (frontend, backend, configuration, tests) so each
response fits within the model's output limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := resolvePrompt(args)
		if err != nil {
			return err
		}

		model, err := llm.NewOpenAILLM(cfg.BaseURL, cfg.ChatModel, cfg.APIKey)
		if err != nil {
			return err
		}

		genOpts := []codegen.Option{}
		if tokenizer, tokErr := textsplitter.DefaultTokenizer(); tokErr == nil {
			genOpts = append(genOpts, codegen.WithTokenizer(tokenizer))
		}
		gen := codegen.New(model, genOpts...)

		if generateStaged {
			results, err := gen.GenerateStaged(cmd.Context(), prompt, codegen.DefaultFullStackStages())
			if err != nil {
				return fmt.Errorf("staged generation failed: %w", err)
			}

			paths, err := codegen.SaveStageResults(generateOutputDir, results)
			if err != nil {
				return err
			}
			for _, sr := range results {
				if sr.Err != nil {
					fmt.Printf("FAILED %s: %v\n", sr.Stage.Name, sr.Err)
				}
			}
			for _, path := range paths {
				fmt.Printf("Wrote %s\n", path)
			}
			return nil
		}

		result, err := gen.Generate(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		path, err := codegen.SaveResult(generateOutputDir, result)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d tokens)\n", path, result.Usage.TotalTokens)
		return nil
	},
}

func resolvePrompt(args []string) (string, error) {
	if generatePromptFile != "" {
		return prompts.LoadPromptFile(generatePromptFile)
	}
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("a prompt argument or --prompt-file is required")
}

func init() {
	generateCmd.Flags().StringVar(&generatePromptFile, "prompt-file", "", "read the prompt from a file")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", "generated", "output directory")
	generateCmd.Flags().BoolVar(&generateStaged, "staged", false, "generate in focused stages")
}
