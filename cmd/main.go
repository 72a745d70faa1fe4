package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tourcast/internal/cli/scheme/colours"
	"tourcast/internal/config"
	"tourcast/internal/tour/cast"
)

func main() {

	config.SetDefaults()

	app := cast.New()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Cancel()
		app.StopPlayback()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye! Safe travels! 🧳"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "tourcast",
		Short: "🎧 Your personal audio tour guide",
		Long: `
┌─────────────────────────────────────┐
│  🎧 Welcome to TourCast! 🗺️        │
│  Personalized audio tours for       │
│  anywhere you wander 🧳✨          │
└─────────────────────────────────────┘

TourCast writes a custom tour of any location around your interests,
then reads it to you in the voice and style you pick. Perfect for
exploring somewhere new! 🌍
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate [location]",
		Short: "🗺️ Create a personalized audio tour",
		Long:  "Generate a tour of a location tailored to your interests, duration and style",
		Run:   app.Generate,
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List saved tours",
		Long:  "Display all tours saved in your archive",
		Run:   app.ListTours,
	}

	// Replay command
	replayCmd := &cobra.Command{
		Use:   "replay [tour-id]",
		Short: "🔁 Replay a saved tour",
		Long:  "Listen to a saved tour again by its ID or pick one from a list",
		Run:   app.Replay,
	}

	// Interests command
	interestsCmd := &cobra.Command{
		Use:   "interests",
		Short: "🎯 Show available tour topics",
		Long:  "List the topics a tour can cover",
		Run:   app.ShowInterests,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🎙️ List narrator voices",
		Long:  "Show the voices offered by the active TTS engine",
		Run:   app.ShowVoices,
	}

	// Cache commands
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "📊 Manage the audio cache",
		Long:  "Inspect or clear cached audio and the tour archive",
		Run:   app.CacheStatus,
	}
	cacheStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "📊 Show cache and archive details",
		Run:   app.CacheStatus,
	}
	cacheClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "🗑️ Clear cached audio",
		Run:   app.CacheClear,
	}
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show the active configuration",
		Long:  "Display the effective LLM, voice and tour settings",
		Run:   app.ShowSettings,
	}

	// Add flags
	generateCmd.Flags().StringP("location", "l", "", "Location to tour (e.g. \"Rome\", \"New York City\")")
	generateCmd.Flags().StringSliceP("interests", "i", nil, "Tour topics: history, architecture, culture, culinary")
	generateCmd.Flags().IntP("duration", "d", viper.GetInt("tour.duration"), "Tour length in minutes (5-60, steps of 5)")
	generateCmd.Flags().StringP("style", "s", viper.GetString("tour.style"), "Narration style: friendly, professional, energetic")
	generateCmd.Flags().String("voice", "", "Optional narrator voice. See voices list for options")
	generateCmd.Flags().StringP("output", "o", "", "Output MP3 path (default <location>_tour.mp3)")
	generateCmd.Flags().Bool("text-only", false, "Write the script only, skip audio")
	generateCmd.Flags().Bool("no-play", false, "Generate the audio file without playing it")
	generateCmd.Flags().Bool("save", false, "Save the tour to the archive for replay")

	rootCmd.AddCommand(generateCmd, listCmd, replayCmd, interestsCmd, voicesCmd, cacheCmd, settingsCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("tourcast")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.tourcast")
	viper.AddConfigPath(".")

	config.SetDefaults()

	viper.ReadInConfig()
}
