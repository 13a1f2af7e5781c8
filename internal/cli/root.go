package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/adsmithhq/adsmith/internal/brief"
	"github.com/adsmithhq/adsmith/internal/cleaner"
	"github.com/adsmithhq/adsmith/internal/copygen"
	"github.com/adsmithhq/adsmith/internal/export"
	"github.com/adsmithhq/adsmith/internal/observability"
	"github.com/adsmithhq/adsmith/internal/pipeline"
	"github.com/adsmithhq/adsmith/internal/progress"
	"github.com/adsmithhq/adsmith/internal/tts"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "adsmith",
	Short: "Generate marketing copy and spoken ad audio from a company brief",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagTUI = true
		return runGenerate(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("adsmith %s\n", Version)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate marketing artifacts from a company brief",
	RunE:  runGenerate,
}

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Convert an ad script to synthesized speech (WAV)",
	RunE:  runSpeak,
}

var listVoicesCmd = &cobra.Command{
	Use:   "list-voices",
	Short: "List the voice catalog with per-provider IDs",
	RunE:  runListVoices,
}

var (
	flagCompany         string
	flagDescription     string
	flagFile            string
	flagURL             string
	flagPDF             string
	flagKeywords        string
	flagAudience        string
	flagTone            string
	flagTypes           string
	flagModel           string
	flagOutputDir       string
	flagSpeak           bool
	flagVerbose         bool
	flagTUI             bool
	flagTTS             string
	flagVoice           string
	flagTTSRate         float64
	flagTTSPitch        float64
	flagNoModelClean    bool
	flagScript          string
	flagScriptFile      string
	flagFromSession     string
	flagAudioOut        string
	flagAnthropicAPIKey string
	flagGeminiAPIKey    string
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(listVoicesCmd)

	generateCmd.Flags().StringVarP(&flagCompany, "company", "c", "", "Company or product name (required)")
	generateCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Brief description passed inline")
	generateCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Brief from a plain-text file")
	generateCmd.Flags().StringVarP(&flagURL, "url", "u", "", "Brief from a web page (readability extraction)")
	generateCmd.Flags().StringVarP(&flagPDF, "pdf", "p", "", "Brief from a PDF file")
	generateCmd.Flags().StringVarP(&flagKeywords, "keywords", "k", "", "Comma-separated keywords to work into the copy")
	generateCmd.Flags().StringVarP(&flagAudience, "audience", "a", "", "Target audience description")
	generateCmd.Flags().StringVarP(&flagTone, "tone", "n", "warm", "Copy tone (e.g. warm, professional, playful, urgent)")
	generateCmd.Flags().StringVarP(&flagTypes, "types", "t", "tagline", "Content types (comma-separated): "+strings.Join(copygen.Slugs(), ", "))
	generateCmd.Flags().StringVarP(&flagModel, "model", "m", "haiku", "Generation model: haiku, sonnet, nova-lite")
	generateCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "adsmith-output", "Directory for saved artifacts")
	generateCmd.Flags().BoolVarP(&flagSpeak, "speak", "S", false, "Also synthesize generated radio scripts to WAV")
	generateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
	generateCmd.Flags().BoolVar(&flagTUI, "tui", false, "Interactive setup wizard for generation options")
	registerSpeechFlags(generateCmd)

	speakCmd.Flags().StringVarP(&flagScript, "script", "s", "", "Ad script text passed inline")
	speakCmd.Flags().StringVarP(&flagScriptFile, "script-file", "f", "", "Ad script from a text file")
	speakCmd.Flags().StringVar(&flagFromSession, "from-session", "", "Speak the radio script of a saved session JSON")
	speakCmd.Flags().StringVarP(&flagAudioOut, "output", "o", "", "Output WAV path (default: print the data URI)")
	speakCmd.Flags().StringVarP(&flagModel, "model", "m", "haiku", "Model for AI-assisted script cleaning: haiku, sonnet, nova-lite")
	speakCmd.Flags().BoolVar(&flagNoModelClean, "no-model-clean", false, "Disable AI-assisted cleaning, regex rules only")
	speakCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable detailed logging")
	registerSpeechFlags(speakCmd)
}

func registerSpeechFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagTTS, "tts", "T", "gemini", "TTS provider: google, gemini, or polly")
	cmd.Flags().StringVarP(&flagVoice, "voice", "V", "", "Voice name from the catalog (default "+tts.DefaultVoiceName+")")
	cmd.Flags().Float64Var(&flagTTSRate, "tts-rate", 0, "Speaking rate, Google only (0.25-4.0)")
	cmd.Flags().Float64Var(&flagTTSPitch, "tts-pitch", 0, "Pitch adjustment in semitones, Google only (-20.0 to 20.0)")
	cmd.Flags().StringVar(&flagAnthropicAPIKey, "anthropic-api-key", "", "Anthropic API key (overrides ANTHROPIC_API_KEY env var)")
	cmd.Flags().StringVar(&flagGeminiAPIKey, "gemini-api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
}

func Execute() error {
	return rootCmd.Execute()
}

func validateSpeechFlags() error {
	validProviders := map[string]bool{"google": true, "gemini": true, "polly": true}
	if !validProviders[flagTTS] {
		return fmt.Errorf("invalid TTS provider %q: must be google, gemini, or polly", flagTTS)
	}
	if flagTTSRate != 0 {
		if flagTTS != "google" {
			return fmt.Errorf("--tts-rate is only supported by Google Cloud TTS")
		}
		if flagTTSRate < 0.25 || flagTTSRate > 4.0 {
			return fmt.Errorf("--tts-rate must be between 0.25 and 4.0 (got %.2f)", flagTTSRate)
		}
	}
	if flagTTSPitch != 0 {
		if flagTTS != "google" {
			return fmt.Errorf("--tts-pitch is only supported by Google Cloud TTS")
		}
		if flagTTSPitch < -20.0 || flagTTSPitch > 20.0 {
			return fmt.Errorf("--tts-pitch must be between -20.0 and 20.0 (got %.2f)", flagTTSPitch)
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagTUI {
		if err := runInteractiveSetup(); err != nil {
			return err
		}
	}

	if flagCompany == "" {
		return fmt.Errorf("--company (-c) is required")
	}

	validModels := map[string]bool{"haiku": true, "sonnet": true, "nova-lite": true}
	if !validModels[flagModel] {
		return fmt.Errorf("invalid model %q: must be haiku, sonnet, or nova-lite", flagModel)
	}

	var types []copygen.ContentType
	for _, slug := range strings.Split(flagTypes, ",") {
		ct, err := copygen.ParseContentType(strings.TrimSpace(slug))
		if err != nil {
			return err
		}
		types = append(types, ct)
	}

	if err := validateSpeechFlags(); err != nil {
		return err
	}
	if err := checkAPIKeys(flagModel, flagSpeak); err != nil {
		return err
	}
	applyKeyFlags()

	ctx := cmd.Context()
	log := observability.InitLogger()
	shutdown := maybeInitTracer(ctx, log)
	defer shutdown()

	var onEvent progress.Callback
	renderer := newRenderer()
	if renderer != nil {
		defer renderer.Finish()
		onEvent = renderer.Handle
	} else {
		onEvent = progress.NopCallback
	}

	start := time.Now()

	// Brief acquisition
	onEvent(progress.NewEvent(progress.StageBrief, "Reading brief...", 0.0, start))
	source := brief.Source{Inline: flagDescription, File: flagFile, URL: flagURL, PDF: flagPDF}
	content, err := source.Resolve(ctx)
	if err != nil {
		return err
	}
	b := brief.Brief{
		Company:     flagCompany,
		Description: content.Text,
		Audience:    flagAudience,
		Tone:        flagTone,
	}
	if flagKeywords != "" {
		for _, k := range strings.Split(flagKeywords, ",") {
			b.Keywords = append(b.Keywords, strings.TrimSpace(k))
		}
	}
	log.InfoContext(ctx, "brief resolved",
		"source", content.Source,
		"words", content.WordCount)

	// Copy generation, one independent request per content type
	gen, err := copygen.NewGenerator(flagModel)
	if err != nil {
		return err
	}
	onEvent(progress.NewEvent(progress.StageCopy, fmt.Sprintf("Generating %d artifact(s) with %s...", len(types), flagModel), 0.1, start))
	outcomes := copygen.GenerateAll(ctx, gen, b, types)

	session := &export.Session{
		ID:        ulid.Make().String(),
		CreatedAt: time.Now().UTC(),
		Brief:     b,
	}
	var failed []string
	for _, oc := range outcomes {
		if oc.Err != nil {
			log.ErrorContext(ctx, "artifact generation failed",
				"type", oc.Type.Slug(),
				"error", oc.Err.Error())
			failed = append(failed, oc.Type.Slug())
			continue
		}
		session.Artifacts = append(session.Artifacts, *oc.Artifact)
	}
	if len(session.Artifacts) == 0 {
		return fmt.Errorf("all artifact generations failed (%s)", strings.Join(failed, ", "))
	}

	// Export
	if err := os.MkdirAll(flagOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", flagOutputDir, err)
	}
	base := filepath.Join(flagOutputDir, session.ID)
	if err := export.SaveSession(session, base+".json"); err != nil {
		return err
	}
	if err := export.WriteText(session, base+".txt"); err != nil {
		return err
	}
	if err := export.WriteHTML(session, base+".html"); err != nil {
		return err
	}

	// Optional speech for every radio script produced
	if flagSpeak {
		for _, a := range session.Artifacts {
			if a.Type != (copygen.RadioScript{}).Slug() {
				continue
			}
			wavPath := base + ".wav"
			if err := speakScript(ctx, log, gen, a.Body, wavPath, onEvent); err != nil {
				return err
			}
		}
	}

	fmt.Printf("\nSession %s: %d artifact(s) written to %s\n", session.ID, len(session.Artifacts), flagOutputDir)
	if len(failed) > 0 {
		fmt.Printf("Failed: %s\n", strings.Join(failed, ", "))
	}
	return nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	set := 0
	for _, v := range []string{flagScript, flagScriptFile, flagFromSession} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --script, --script-file, or --from-session is required")
	}
	if err := validateSpeechFlags(); err != nil {
		return err
	}
	if err := checkAPIKeys("", true); err != nil {
		return err
	}
	applyKeyFlags()

	ctx := cmd.Context()
	log := observability.InitLogger()
	shutdown := maybeInitTracer(ctx, log)
	defer shutdown()

	script := flagScript
	switch {
	case flagScriptFile != "":
		data, err := os.ReadFile(flagScriptFile)
		if err != nil {
			return fmt.Errorf("read script from %s: %w", flagScriptFile, err)
		}
		script = string(data)
	case flagFromSession != "":
		session, err := export.LoadSession(flagFromSession)
		if err != nil {
			return err
		}
		slug := (copygen.RadioScript{}).Slug()
		for _, a := range session.Artifacts {
			if a.Type == slug {
				script = a.Body
				break
			}
		}
		if script == "" {
			return fmt.Errorf("session %s has no %s artifact", flagFromSession, slug)
		}
	}

	var model cleaner.TextModel
	if !flagNoModelClean {
		if gen, err := copygen.NewGenerator(flagModel); err == nil && hasModelKey(flagModel) {
			model = gen
		}
	}

	// The data URI goes to stdout when no output file is given, so the
	// bar only renders when it will not collide with the payload.
	var onEvent progress.Callback
	if flagAudioOut != "" {
		if renderer := newRenderer(); renderer != nil {
			defer renderer.Finish()
			onEvent = renderer.Handle
		}
	}

	return speakScript(ctx, log, model, script, flagAudioOut, onEvent)
}

// speakScript runs the speech pipeline for one script. A nil model
// means regex-only cleaning; a non-nil one enables the AI-assisted
// extractor backed by the same text-model client as copy generation.
func speakScript(ctx context.Context, log *slog.Logger, model cleaner.TextModel, script, wavPath string, onEvent progress.Callback) error {
	provider, err := tts.NewProvider(ctx, flagTTS, tts.Config{
		SpeakingRate: flagTTSRate,
		Pitch:        flagTTSPitch,
		APIKey:       flagGeminiAPIKey,
	})
	if err != nil {
		return err
	}
	defer provider.Close()

	voice, err := tts.ResolveVoice(flagTTS, flagVoice)
	if err != nil {
		return err
	}

	var extractor cleaner.Extractor = cleaner.NewRegexExtractor()
	if model != nil {
		extractor = cleaner.NewModelAssistedExtractor(model, log)
	}

	uri, err := pipeline.NewSpeech(extractor, provider, voice, log, onEvent).Run(ctx, script)
	if err != nil {
		return err
	}

	if wavPath == "" {
		fmt.Println(uri)
		return nil
	}
	if err := export.WriteWAV(uri, wavPath); err != nil {
		return err
	}
	fmt.Printf("Audio written to %s\n", wavPath)
	return nil
}

func runListVoices(cmd *cobra.Command, args []string) error {
	providers := []struct {
		name  string
		label string
	}{
		{"gemini", "GEMINI"},
		{"google", "GOOGLE CLOUD TTS"},
		{"polly", "AWS POLLY"},
	}

	fmt.Println("\nAvailable voices:")
	for _, p := range providers {
		fmt.Printf("\n  %s\n", p.label)
		fmt.Printf("  %s\n", strings.Repeat("─", 50))
		fmt.Printf("  %-12s %-8s %-28s %s\n", "NAME", "GENDER", "PROVIDER ID", "DESCRIPTION")
		for _, v := range tts.Catalog() {
			resolved, err := tts.ResolveVoice(p.name, v.Name)
			if err != nil {
				return err
			}
			def := ""
			if v.Name == tts.DefaultVoiceName {
				def = " (default)"
			}
			fmt.Printf("  %-12s %-8s %-28s %s%s\n", v.Name, v.Gender, resolved.ID, v.Description, def)
		}
	}
	fmt.Println()
	return nil
}

// newRenderer returns a progress bar renderer unless verbose logging is
// on (the bar and log lines fight over the terminal).
func newRenderer() *progress.BarRenderer {
	if flagVerbose {
		return nil
	}
	return progress.NewBarRenderer(os.Stdout)
}

func maybeInitTracer(ctx context.Context, log *slog.Logger) func() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func() {}
	}
	tp, err := observability.InitTracer(ctx, "adsmith", Version)
	if err != nil {
		log.Warn("tracing disabled", "error", err.Error())
		return func() {}
	}
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}
}

func hasModelKey(model string) bool {
	switch model {
	case "haiku", "sonnet":
		return flagAnthropicAPIKey != "" || os.Getenv("ANTHROPIC_API_KEY") != ""
	case "nova-lite":
		// Bedrock rides the AWS default credential chain; assume it is
		// configured when the user asked for the model.
		return true
	}
	return false
}

// applyKeyFlags copies key flags into the env vars the SDK clients read.
func applyKeyFlags() {
	if flagAnthropicAPIKey != "" {
		os.Setenv("ANTHROPIC_API_KEY", flagAnthropicAPIKey)
	}
	if flagGeminiAPIKey != "" {
		os.Setenv("GEMINI_API_KEY", flagGeminiAPIKey)
	}
}

func checkAPIKeys(model string, speech bool) error {
	needed := map[string]bool{}

	hasKey := func(envVar, flagVal string) bool {
		return flagVal != "" || os.Getenv(envVar) != ""
	}

	switch model {
	case "haiku", "sonnet":
		if !hasKey("ANTHROPIC_API_KEY", flagAnthropicAPIKey) {
			needed["ANTHROPIC_API_KEY"] = true
		}
	case "nova-lite":
		// Bedrock uses the AWS default credential chain; misconfigured
		// credentials surface as an AuthenticationError at call time.
	}

	if speech {
		switch flagTTS {
		case "gemini":
			if !hasKey("GEMINI_API_KEY", flagGeminiAPIKey) {
				needed["GEMINI_API_KEY"] = true
			}
		case "google":
			// Application Default Credentials
		case "polly":
			// AWS default credential chain
		}
	}

	if len(needed) > 0 {
		var missing []string
		for k := range needed {
			missing = append(missing, k)
		}
		return fmt.Errorf("missing required environment variable(s): %s\nYou can also pass these via --anthropic-api-key or --gemini-api-key flags", strings.Join(missing, ", "))
	}
	return nil
}
