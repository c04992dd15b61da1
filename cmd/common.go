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
	"fmt"

	"github.com/valpere/linguacast/internal/config"
	"github.com/valpere/linguacast/internal/detector"
	"github.com/valpere/linguacast/internal/speech"
	"github.com/valpere/linguacast/internal/translator"
)

// buildTranslator constructs the single translation provider named in cfg.
func buildTranslator(cfg *config.Config) (translator.Translator, error) {
	tc := cfg.Translation
	timeout := cfg.Server.ProviderTimeout

	switch tc.Provider {
	case "googleweb":
		return translator.NewGoogleWebService("", timeout), nil
	case "google":
		return translator.NewGoogleService(tc.Google.Credentials, tc.Google.APIKey), nil
	case "mymemory":
		return translator.NewMyMemoryService(tc.MyMemory.Email, detector.New(), timeout), nil
	case "ollama":
		return translator.NewOllamaTranslator(tc.Ollama.BaseURL, tc.Ollama.Model, timeout), nil
	case "openrouter":
		if tc.OpenRouter.APIKey == "" {
			return nil, fmt.Errorf("translation.openrouter.api_key is required for the openrouter provider")
		}
		return translator.NewOpenRouterService(tc.OpenRouter.APIKey, tc.OpenRouter.BaseURL, tc.OpenRouter.Model, timeout), nil
	case "systran":
		if tc.Systran.APIKey == "" {
			return nil, fmt.Errorf("translation.systran.api_key is required for the systran provider")
		}
		return translator.NewSystranService(tc.Systran.APIKey, timeout), nil
	}
	return nil, fmt.Errorf("unknown translation provider: %s", tc.Provider)
}

// buildSynthesizer constructs the single speech provider named in cfg.
func buildSynthesizer(cfg *config.Config) (speech.Synthesizer, error) {
	sc := cfg.Speech
	timeout := cfg.Server.ProviderTimeout

	switch sc.Provider {
	case "google":
		return speech.NewGoogleSynthesizer(sc.Google.BaseURL, sc.Google.TLD, sc.Google.Slow, timeout), nil
	case "openai":
		if sc.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("speech.openai.api_key is required for the openai provider")
		}
		return speech.NewOpenAISynthesizer(sc.OpenAI.APIKey, sc.OpenAI.BaseURL, sc.OpenAI.Model, sc.OpenAI.Voice, timeout), nil
	}
	return nil, fmt.Errorf("unknown speech provider: %s", sc.Provider)
}
