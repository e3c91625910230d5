package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"stitch-client/device"
	"stitch-client/domain"
	"stitch-client/infrastructure/api"
	"stitch-client/internal"
	"stitch-client/services"
	"stitch-client/validation"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const previewRunes = 60

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stitch terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and centralizes error reporting, so that
// 'defer' statements execute before the process exits and the wiring stays
// testable outside the main entry point.
func run() (int, error) {
	filePath := flag.String("file", "", "Path of the document to process")
	full := flag.Bool("full", false, "Submit as an asynchronous full-processing job")
	out := flag.String("out", "", "Output path for the exported artifact (full mode only)")
	health := flag.Bool("health", false, "Check service health and exit")
	flag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	baseURL, err := internal.ServiceBaseURL(config.BaseURL)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Client stack
	profile := device.Derive(config.UserAgent)
	policy := api.DefaultRetryPolicy()
	if config.MaxAttempts > 0 {
		policy.MaxAttempts = config.MaxAttempts
	}
	if config.BaseDelay > 0 {
		policy.BaseDelay = config.BaseDelay
	}
	if config.MaxJitter > 0 {
		policy.MaxJitter = config.MaxJitter
	}

	client := api.NewClient(baseURL, profile, policy, logger)
	validator := validation.NewValidator(profile, logger)
	service := services.NewProcessingService(validator, client, logger, config.PollInterval)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *health {
		if err := client.Health(ctx); err != nil {
			return exitRuntime, err
		}
		fmt.Println(color.New(color.FgGreen).Render("Service is healthy"))
		return exitOK, nil
	}

	if *filePath == "" {
		flag.Usage()
		return exitConfig, fmt.Errorf("missing -file argument")
	}

	candidate, err := readCandidate(*filePath)
	if err != nil {
		return exitRuntime, err
	}

	opts := api.SubmitOptions{
		Tokenizer:         config.Tokenizer,
		MaxTokens:         config.MaxTokens,
		ChunkMethod:       config.ChunkMethod,
		PreserveStructure: config.PreserveStructure,
		ExportFormat:      config.ExportFormat,
		OnProgress: func(v float64) {
			fmt.Printf("\rUploading... %3.0f%%", v)
			if v >= 100 {
				fmt.Println()
			}
		},
	}

	if *full {
		return runFull(ctx, service, candidate, opts, *out)
	}
	return runQuick(ctx, service, candidate, opts)
}

func runQuick(ctx context.Context, service services.IProcessingService, candidate domain.UploadCandidate, opts api.SubmitOptions) (int, error) {
	result, err := service.ProcessQuick(ctx, candidate, opts)
	if err != nil {
		return exitRuntime, err
	}
	renderResult(result)
	if result.Status == domain.StatusError {
		return exitRuntime, nil
	}
	return exitOK, nil
}

func runFull(ctx context.Context, service services.IProcessingService, candidate domain.UploadCandidate, opts api.SubmitOptions, out string) (int, error) {
	result, err := service.ProcessFull(ctx, candidate, opts, func(v float64) {
		fmt.Printf("\rProcessing... %3.0f%%", v)
	})
	fmt.Println()
	if err != nil {
		return exitRuntime, err
	}

	if out == "" {
		out = result.ExportName
	}

	body, err := service.DownloadExport(ctx, result.DownloadRef)
	if err != nil {
		return exitRuntime, err
	}
	defer body.Close()

	f, err := os.Create(out)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Println(color.New(color.FgGreen).Render(
		fmt.Sprintf("Job %s completed, wrote %d bytes to %s", result.JobID, written, out),
	))
	return exitOK, nil
}

// readCandidate loads the file from disk. The content type is left empty
// so the validator sniffs it from the payload bytes.
func readCandidate(path string) (domain.UploadCandidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.UploadCandidate{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadCandidate{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return domain.UploadCandidate{
		Name: info.Name(),
		Size: info.Size(),
		Data: data,
	}, nil
}

func renderResult(result domain.ProcessingResult) {
	header := fmt.Sprintf("  ====== %s ======", result.Filename)
	if result.Status == domain.StatusError {
		header = color.New(color.BgBlack, color.FgRed).Render(header)
	} else {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	if result.Status == domain.StatusError {
		fmt.Printf("Processing failed: %s\n", result.Error)
		return
	}

	fmt.Printf("Chunks: %d, total tokens: %d, average: %d",
		result.ChunkCount, result.TotalTokens, result.AverageTokensPerChunk)
	if result.ProcessingTimeMs != nil {
		fmt.Printf(", processing time: %.0fms", *result.ProcessingTimeMs)
	}
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Tokens", "Text"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, chunk := range result.Chunks {
		table.Append([]string{
			strconv.Itoa(chunk.ID),
			strconv.Itoa(chunk.TokenCount),
			truncate(chunk.Text, previewRunes),
		})
	}
	table.Render()
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
