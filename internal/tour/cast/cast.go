package cast

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tourcast/internal/cli/scheme/colours"
	"tourcast/internal/domain/archive"
	"tourcast/internal/domain/tour"
	"tourcast/internal/llm"
	"tourcast/internal/tour/guide"
	"tourcast/internal/tour/tts"
)

// TourCast main application structure
type TourCast struct {
	mu      sync.Mutex
	tts     tts.Engine
	archive *archive.Archive
	ctx     context.Context
	cancel  context.CancelFunc
}

func New() *TourCast {
	ctx, cancel := context.WithCancel(context.Background())
	return &TourCast{
		archive: archive.New(viper.GetString("archive.dir")),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (tc *TourCast) Cancel() {
	tc.cancel()
}

// StopPlayback halts any running narration. Safe to call from the
// signal handler.
func (tc *TourCast) StopPlayback() {
	tc.mu.Lock()
	engine := tc.tts
	tc.mu.Unlock()

	if engine != nil {
		engine.Stop()
	}
}

// engine lazily builds the TTS engine so text-only runs never need
// audio credentials.
func (tc *TourCast) engine() (tts.Engine, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.tts != nil {
		return tc.tts, nil
	}

	engine, err := tts.NewEngine(tts.Config{
		Type:   viper.GetString("tts.type"),
		Voice:  viper.GetString("tts.voice"),
		Speed:  viper.GetFloat64("tts.speed"),
		Volume: viper.GetFloat64("tts.volume"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tts engine: %w", err)
	}

	tc.tts = engine
	return engine, nil
}

func (tc *TourCast) provider() (llm.Provider, error) {
	key := viper.GetString("llm.api_key")
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("no OpenAI API key configured: set OPENAI_API_KEY or llm.api_key")
	}

	timeout, _ := time.ParseDuration(viper.GetString("llm.timeout"))
	return llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:      key,
		BaseURL:     viper.GetString("llm.base_url"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		Timeout:     timeout,
	})
}

func (tc *TourCast) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🎧 Welcome to TourCast! 🎧")
	fmt.Println()
	colours.Info.Println("🗺️  Available commands:")
	fmt.Println("  • tourcast generate  - Create a personalized audio tour")
	fmt.Println("  • tourcast list      - Browse your saved tours")
	fmt.Println("  • tourcast replay    - Listen to a saved tour again")
	fmt.Println("  • tourcast interests - See the tour topics on offer")
	fmt.Println("  • tourcast voices    - List narrator voices")
	fmt.Println("  • tourcast cache     - Manage the audio cache")
	fmt.Println("  • tourcast settings  - Show the active configuration")
	fmt.Println()
	colours.Prompt.Println("✨ Where shall we explore today? ✨")
}

// Generate runs the full flow: collect inputs, write the script, make
// the audio, play it.
func (tc *TourCast) Generate(cmd *cobra.Command, args []string) {
	location, _ := cmd.Flags().GetString("location")
	rawInterests, _ := cmd.Flags().GetStringSlice("interests")
	duration, _ := cmd.Flags().GetInt("duration")
	styleFlag, _ := cmd.Flags().GetString("style")
	voice, _ := cmd.Flags().GetString("voice")
	output, _ := cmd.Flags().GetString("output")
	textOnly, _ := cmd.Flags().GetBool("text-only")
	noPlay, _ := cmd.Flags().GetBool("no-play")
	save, _ := cmd.Flags().GetBool("save")

	if location == "" && len(args) > 0 {
		location = strings.Join(args, " ")
	}
	if location == "" {
		location = tc.promptLocation()
	}
	if len(rawInterests) == 0 {
		rawInterests = viper.GetStringSlice("tour.interests")
	}

	interests := make([]tour.Interest, 0, len(rawInterests))
	for _, raw := range rawInterests {
		interest, err := tour.ParseInterest(raw)
		if err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		interests = append(interests, interest)
	}

	style, err := tour.ParseStyle(styleFlag)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	req := tour.Request{
		Location:  location,
		Interests: interests,
		Duration:  duration,
		Style:     style,
		Voice:     voice,
	}
	req.Normalize()

	// Same gate order as the original form: key, then location, then
	// interests.
	provider, err := tc.provider()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}
	if err := req.Validate(); err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	fmt.Println()
	colours.Info.Printf("🗺️  Creating your personalized tour of %s...\n", req.Location)
	colours.Info.Printf("    Topics: %s | Length: ~%d minutes | Guide: %s\n",
		tour.JoinInterests(req.OrderedInterests()), req.Duration, req.Style)
	fmt.Println()

	manager := guide.NewManager(provider)
	script, err := manager.Run(tc.ctx, req)
	if err != nil {
		colours.Error.Printf("❌ Tour generation failed: %v\n", err)
		return
	}

	tc.displayScript(script)

	audioPath := ""
	if !textOnly {
		audioPath = output
		if audioPath == "" {
			audioPath = tour.OutputFileName(req.Location)
		}
		if !tc.renderAudio(script, req.Voice, audioPath, noPlay) {
			audioPath = ""
		}
	}

	if save {
		if _, err := tc.archive.Save(script, absPath(audioPath)); err != nil {
			colours.Warning.Printf("⚠️ Could not save tour to archive: %v\n", err)
		} else {
			colours.Success.Printf("💾 Tour saved (ID: %s)\n", shortID(script.ID))
		}
	}
}

func (tc *TourCast) displayScript(script *tour.Script) {
	fmt.Println()
	colours.Title.Printf("📝 Your Tour of %s\n", script.Location)
	colours.Guide.Printf("🎙️  %s guide | %s | ~%d minutes | %d words\n",
		script.Style, tour.JoinInterests(script.Interests), script.Duration, script.Words())
	fmt.Println()
	fmt.Println(script.Narration)
	fmt.Println()
}

// renderAudio synthesizes the narration to a file and optionally plays
// it. Returns false if no audio was produced.
func (tc *TourCast) renderAudio(script *tour.Script, voice, audioPath string, noPlay bool) bool {
	engine, err := tc.engine()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return false
	}

	if voice != "" && voice != "default" {
		if err := engine.SetVoice(voice); err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return false
		}
	}

	colours.Info.Println("🎙️  Generating audio tour...")
	if err := engine.SynthesizeToFile(script.Text(), audioPath); err != nil {
		colours.Error.Printf("❌ Audio generation failed: %v\n", err)
		return false
	}
	colours.Success.Printf("📥 Audio saved to %s\n", audioPath)

	if noPlay {
		return true
	}

	fmt.Println()
	colours.Success.Println("🎵 Starting tour playback... 🎵")
	fmt.Println("💡 Press Ctrl+C to stop anytime")
	fmt.Println()

	go func() {
		if err := engine.Speak(script.Text()); err != nil {
			colours.Error.Printf("❌ Playback error: %v\n", err)
		} else {
			colours.Success.Println("✅ Tour finished! 🌟")
			colours.Prompt.Println("🧳 Enjoy your visit!")
		}
	}()

	tc.waitForPlayback(engine)
	return true
}

func (tc *TourCast) waitForPlayback(engine tts.Engine) {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-tc.ctx.Done():
			return
		default:
			fmt.Print("\n⏸️  Press 'p' to pause/resume, 's' to stop, or Enter to continue: ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))

			switch input {
			case "p", "pause":
				if engine.IsPlaying() {
					engine.Pause()
					colours.Warning.Println("⏸️  Paused")
				} else {
					engine.Resume()
					colours.Success.Println("▶️  Resumed")
				}
			case "s", "stop":
				engine.Stop()
				colours.Warning.Println("⏹️  Stopped")
				return
			case "":
				continue
			default:
				colours.Info.Println("ℹ️  Use 'p' for pause/resume, 's' to stop")
			}
		}
	}
}

func (tc *TourCast) promptLocation() string {
	fmt.Println()
	colours.Prompt.Print("📍 Where would you like to explore? ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ListTours shows the archive, newest first.
func (tc *TourCast) ListTours(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🗂️  Saved Tours 🗂️")
	fmt.Println()

	entries, err := tc.archive.List()
	if err != nil {
		colours.Error.Printf("❌ Failed to read archive: %v\n", err)
		return
	}

	if len(entries) == 0 {
		colours.Warning.Println("🔍 No saved tours yet. Generate one with: tourcast generate --save")
		return
	}

	for i, entry := range entries {
		fmt.Printf("  %d. ", i+1)
		colours.Title.Printf("%s", entry.Script.Location)
		fmt.Printf(" (~%d minutes)\n", entry.Script.Duration)
		fmt.Printf("     🎯 Topics: %s | 🎙️ Guide: %s\n",
			tour.JoinInterests(entry.Script.Interests), entry.Script.Style)
		fmt.Printf("     🕐 Saved: %s\n", entry.SavedAt.Format("2006-01-02 15:04"))
		colours.Info.Printf("     ID: %s\n", shortID(entry.Script.ID))
		fmt.Println()
	}

	colours.Success.Printf("✨ %d saved tours\n", len(entries))
}

// Replay plays a saved tour again.
func (tc *TourCast) Replay(cmd *cobra.Command, args []string) {
	entry, ok := tc.pickEntry(args)
	if !ok {
		return
	}

	script := entry.Script
	tc.displayScript(&script)

	colours.Prompt.Print("🎧 Ready to listen? Press Enter to start (or 'skip' to just show text): ")
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.EqualFold(strings.TrimSpace(input), "skip") {
		return
	}

	engine, err := tc.engine()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	fmt.Println()
	colours.Success.Println("🎵 Starting tour playback... 🎵")
	fmt.Println()

	go func() {
		if err := engine.Speak(script.Text()); err != nil {
			colours.Error.Printf("❌ Playback error: %v\n", err)
		} else {
			colours.Success.Println("✅ Tour finished! 🌟")
		}
	}()

	tc.waitForPlayback(engine)
}

func (tc *TourCast) pickEntry(args []string) (*archive.Entry, bool) {
	if len(args) > 0 {
		entry, err := tc.archive.Get(args[0])
		if err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return nil, false
		}
		return entry, true
	}

	entries, err := tc.archive.List()
	if err != nil {
		colours.Error.Printf("❌ Failed to read archive: %v\n", err)
		return nil, false
	}
	if len(entries) == 0 {
		colours.Warning.Println("🔍 No saved tours yet!")
		return nil, false
	}

	fmt.Println()
	colours.Title.Println("🗂️  Choose a tour to replay 🗂️")
	fmt.Println()
	for i, entry := range entries {
		fmt.Printf("%d. ", i+1)
		colours.Title.Printf("%s", entry.Script.Location)
		fmt.Printf(" (%s, ~%d minutes)\n",
			tour.JoinInterests(entry.Script.Interests), entry.Script.Duration)
	}

	fmt.Println()
	colours.Prompt.Print("🌟 Enter the number of your tour (or 'q' to quit): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "q" || input == "quit" {
		return nil, false
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(entries) {
		colours.Error.Println("❌ Invalid selection!")
		return nil, false
	}

	return &entries[choice-1], true
}

// ShowInterests lists what the guide can cover.
func (tc *TourCast) ShowInterests(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🎯 Tour Topics 🎯")
	fmt.Println()

	descriptions := map[tour.Interest]string{
		tour.InterestHistory:      "Key events, eras and the people who shaped the place",
		tour.InterestArchitecture: "Buildings, styles and the stories behind the skyline",
		tour.InterestCulture:      "Traditions, festivals, arts and everyday life",
		tour.InterestCulinary:     "Signature dishes, markets and where locals eat",
	}

	for _, interest := range tour.Catalog {
		colours.Info.Printf("  • %-14s", interest)
		fmt.Printf(" %s\n", descriptions[interest])
	}

	fmt.Println()
	colours.Prompt.Println("💡 Combine them: tourcast generate -l Rome -i history,culinary")
}

// ShowVoices lists the narrator voices of the active engine.
func (tc *TourCast) ShowVoices(cmd *cobra.Command, args []string) {
	engine, err := tc.engine()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	voices, err := engine.GetAvailableVoices()
	if err != nil {
		colours.Error.Printf("❌ Failed to list voices: %v\n", err)
		return
	}

	fmt.Println()
	colours.Title.Println("🎙️  Narrator Voices 🎙️")
	fmt.Println()
	for _, voice := range voices {
		fmt.Printf("  • %s\n", voice)
	}
	fmt.Println()
	colours.Success.Printf("✨ %d voices available\n", len(voices))
}

// CacheStatus displays synthesis cache and archive details.
func (tc *TourCast) CacheStatus(cmd *cobra.Command, args []string) {
	colours.Title.Println("📊 Cache Status")

	engine, err := tc.engine()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	if cacheable, ok := engine.(tts.CacheableEngine); ok {
		stats, err := cacheable.GetCacheStats()
		if err != nil {
			colours.Error.Printf("❌ Failed to get cache stats: %v\n", err)
			return
		}
		colours.Info.Printf("📁 Audio cache: %s\n", stats["cache_directory"])
		colours.Info.Printf("🎵 Cached files: %d\n", stats["cached_files"])
		colours.Info.Printf("📏 Size: %.2f MB\n", stats["total_size_mb"])
	} else {
		colours.Warning.Println("⚠️ Active TTS engine has no audio cache")
	}

	info, err := tc.archive.Info()
	if err != nil {
		colours.Error.Printf("❌ Failed to get archive info: %v\n", err)
		return
	}

	fmt.Println()
	if info["exists"].(bool) {
		colours.Success.Println("✅ Tour archive exists")
		colours.Info.Printf("📁 Location: %s\n", info["file"])
		colours.Info.Printf("🗂️  Saved tours: %d\n", info["tours"])
		colours.Info.Printf("🕐 Last modified: %s\n",
			info["last_modified"].(time.Time).Format("2006-01-02 15:04:05"))
	} else {
		colours.Warning.Println("❌ No tour archive yet")
		colours.Info.Println("💡 Save a tour with: tourcast generate --save")
	}
}

// CacheClear removes all cached audio.
func (tc *TourCast) CacheClear(cmd *cobra.Command, args []string) {
	engine, err := tc.engine()
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	cacheable, ok := engine.(tts.CacheableEngine)
	if !ok {
		colours.Warning.Println("⚠️ Active TTS engine has no audio cache")
		return
	}

	if err := cacheable.ClearCache(); err != nil {
		colours.Error.Printf("❌ Failed to clear cache: %v\n", err)
		return
	}

	logrus.Info("Cleared audio cache")
	colours.Success.Println("✅ Audio cache cleared")
}

// ShowSettings prints the effective configuration.
func (tc *TourCast) ShowSettings(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("⚙️ TourCast Settings ⚙️")
	fmt.Println()

	colours.Prompt.Println("🤖 Language model:")
	fmt.Printf("  • Model: %s\n", viper.GetString("llm.model"))
	fmt.Printf("  • Endpoint: %s\n", viper.GetString("llm.base_url"))
	if viper.GetString("llm.api_key") != "" {
		colours.Success.Println("  • API key: configured")
	} else {
		colours.Warning.Println("  • API key: not set (export OPENAI_API_KEY)")
	}
	fmt.Println()

	colours.Prompt.Println("🎤 Voice settings:")
	fmt.Printf("  • Engine: %s (available: %v)\n",
		viper.GetString("tts.type"), tts.GetAvailableEngines())
	fmt.Printf("  • Voice: %s\n", viper.GetString("tts.voice"))
	fmt.Printf("  • Speed: %.1fx\n", viper.GetFloat64("tts.speed"))
	fmt.Println()

	colours.Prompt.Println("🗺️  Tour defaults:")
	fmt.Printf("  • Duration: %d minutes\n", viper.GetInt("tour.duration"))
	fmt.Printf("  • Style: %s\n", viper.GetString("tour.style"))
	fmt.Printf("  • Interests: %s\n", strings.Join(viper.GetStringSlice("tour.interests"), ", "))
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
