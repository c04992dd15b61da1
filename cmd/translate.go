/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valpere/linguacast/internal/config"
	"github.com/valpere/linguacast/internal/relay"
)

var (
	inputFile  string
	outputFile string
	inputText  string
	sourceLang string
	targetLang string
	provider   string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text with the configured provider",
	Long: `Translate text once through the same provider and validation the
POST /translate endpoint uses.

Available providers:
  - googleweb   Google Translate web endpoint (default, no key)
  - google      Google Cloud Translation (credentials or API key)
  - mymemory    MyMemory (free, 5000 chars/day)
  - ollama      Ollama LLM (self-hosted)
  - openrouter  OpenRouter LLM (requires API key)
  - systran     Systran Translate (requires API key)

Examples:
  linguacast translate --text "Hello" --target fr
  linguacast translate -i note.txt -o note.de.txt -s en -t de --provider mymemory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if provider != "" {
			cfg.Translation.Provider = provider
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		tr, err := buildTranslator(cfg)
		if err != nil {
			return err
		}
		svc := relay.NewService(tr, nil,
			relay.WithLogger(logger),
			relay.WithProviderTimeout(cfg.Server.ProviderTimeout))

		resp, err := svc.Translate(context.Background(), relay.TranslationRequest{
			Text:     text,
			SrcLang:  sourceLang,
			DestLang: targetLang,
		})
		if err != nil {
			return err
		}

		if outputFile == "" {
			fmt.Println(resp.TranslatedText)
			return nil
		}
		if err := writeOutput([]byte(resp.TranslatedText)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Translated %s to %s with %s\n", sourceLang, targetLang, tr.Name())
		return nil
	},
}

var speakLang string

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Synthesize speech with the configured provider",
	Long: `Synthesize text once through the same provider and validation the
POST /text-to-speech endpoint uses, writing the audio to a file.

Available providers:
  - google   Google Translate TTS (default, no key)
  - openai   OpenAI text-to-speech (requires API key)

Example:
  linguacast speak --text "Bonjour" --lang fr -o bonjour.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if provider != "" {
			cfg.Speech.Provider = provider
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		syn, err := buildSynthesizer(cfg)
		if err != nil {
			return err
		}
		svc := relay.NewService(nil, syn,
			relay.WithLogger(logger),
			relay.WithProviderTimeout(cfg.Server.ProviderTimeout))

		resp, err := svc.Synthesize(context.Background(), relay.SpeechRequest{
			Text:         text,
			LanguageCode: speakLang,
		})
		if err != nil {
			return err
		}

		audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
		if err != nil {
			return fmt.Errorf("failed to decode audio: %w", err)
		}
		if err := writeOutput(audio); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes of audio to %s\n", len(audio), outputFile)
		return nil
	},
}

func readInput() (string, error) {
	if inputText != "" && inputFile != "" {
		return "", fmt.Errorf("use either --text or --input, not both")
	}
	if inputFile == "" {
		return inputText, nil
	}
	if inputFile == outputFile {
		return "", fmt.Errorf("input file and output file cannot be the same")
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(speakCmd)

	for _, c := range []*cobra.Command{translateCmd, speakCmd} {
		c.Flags().StringVar(&inputText, "text", "", "Text to process")
		c.Flags().StringVarP(&inputFile, "input", "i", "", "Input file with the text to process")
		c.Flags().StringVarP(&outputFile, "output", "o", "", "Output file")
	}

	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVar(&provider, "provider", "", fmt.Sprintf("Translation provider, one of %v (overrides translation.provider)", config.TranslationProviders))
	translateCmd.MarkFlagRequired("target")

	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "", "Language code of the text (required)")
	speakCmd.Flags().StringVar(&provider, "provider", "", fmt.Sprintf("Speech provider, one of %v (overrides speech.provider)", config.SpeechProviders))
	speakCmd.MarkFlagRequired("lang")
	speakCmd.MarkFlagRequired("output")
}
