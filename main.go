package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	taskDescription string
	outputDir       string
	apiKey          string
	dryRun          bool
	debugMode       bool
)

var rootCmd = &cobra.Command{
	Use:   "tube-writer <youtube-url>",
	Short: "Convert YouTube videos into SEO-optimized articles using AI",
	Long: `A multi-agent pipeline that turns a YouTube video into a written article:
fetch the transcript, research supporting topics on the web, and generate
SEO-optimized prose.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		videoURL := args[0]

		if debugMode {
			SetDebugMode(true)
		}

		if err := ensureConfigExists(); err != nil {
			log.Fatalf("Failed to initialize config: %v", err)
		}

		settings, err := loadSettings(GetConfigPath("settings.yaml"))
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		if outputDir != "" {
			settings.OutputDirectory = outputDir
		}

		videoID, err := extractVideoID(videoURL)
		if err != nil {
			log.Fatalf("Invalid YouTube URL %q: %v", videoURL, err)
		}

		if dryRun {
			fmt.Println("Configuration and URL validation successful")
			fmt.Printf("Video URL: %s\n", videoURL)
			fmt.Printf("Video ID: %s\n", videoID)
			fmt.Printf("Task: %s\n", taskDescription)
			fmt.Printf("Output directory: %s\n", settings.OutputDirectory)
			fmt.Printf("Model: %s\n", settings.Model.Name)
			return
		}

		// Get API key
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			log.Fatal("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
		}

		model, err := NewAnthropicModel(apiKey)
		if err != nil {
			log.Fatalf("Failed to create language model: %v", err)
		}

		transcripts, err := NewTranscriptAPI(settings.YouTube)
		if err != nil {
			log.Fatalf("Failed to create transcript provider: %v", err)
		}

		supervisor := NewSupervisor(
			settings,
			transcripts,
			NewAnalyzer(model, NewDuckDuckGo(), settings),
			NewWriter(model, settings),
		)

		response := supervisor.ProcessVideo(videoURL, taskDescription)
		if response.Status == StatusFailure {
			log.Fatalf("Processing failed at %s stage: %s", response.Stage, response.Message)
		}

		exporter := NewExporter(settings)
		filename, err := exporter.Export(response.Article, videoID, videoURL)
		if err != nil {
			log.Fatalf("Failed to export article: %v", err)
		}

		fmt.Println("Article generation completed successfully")
		fmt.Printf("Markdown file: %s\n", filename)
	},
}

func init() {
	rootCmd.Flags().StringVar(&taskDescription, "task", defaultTask, "Task description for the AI agents")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for generated files")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate URL and configuration without processing")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
