package mcptool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubescript/internal/fetcher"
	"tubescript/internal/logging"
	"tubescript/internal/messages"
	"tubescript/internal/transcript"
)

// ToolName is the name the transcript tool is registered under.
const ToolName = "fetch_transcript"

// FetchInput is the tool's argument object.
type FetchInput struct {
	Video      string `json:"video" jsonschema:"YouTube video id (11 characters) or a watch, youtu.be or shorts URL"`
	Timestamps bool   `json:"timestamps,omitempty" jsonschema:"Prefix each line of the text content with its [m:ss] start time"`
}

// FetchOutput is the tool's structured result.
type FetchOutput struct {
	VideoID  string            `json:"video_id"`
	Language string            `json:"language,omitempty"`
	Lines    []transcript.Line `json:"lines"`
}

// NewServer builds an MCP server with the transcript tool registered.
func NewServer(version string, f messages.Fetcher, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tubescript",
		Version: version,
	}, nil)
	Register(server, f, logger)
	return server
}

// Register adds the transcript tool to server.
func Register(server *mcp.Server, f messages.Fetcher, logger *slog.Logger) {
	logger = logging.NewComponentLogger(logger, "mcp")
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Fetch the caption transcript of a YouTube video. Returns timed lines (start and duration in seconds) and the transcript text. English tracks are preferred; otherwise the first available track is used.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
		if strings.TrimSpace(input.Video) == "" {
			return nil, FetchOutput{}, errors.New("video is required")
		}
		result, err := f.FetchTranscript(ctx, input.Video)
		if err != nil {
			terr := fetcher.AsTranscriptError(err)
			logger.Info("tool call failed", logging.String(logging.FieldErrorKind, string(terr.Kind)), logging.Error(err))
			return nil, FetchOutput{}, fmt.Errorf("%s: %s", terr.Kind, terr.Message)
		}

		lines := result.Lines
		if lines == nil {
			lines = []transcript.Line{}
		}
		out := FetchOutput{VideoID: result.VideoID, Language: result.Language, Lines: lines}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: renderText(lines, input.Timestamps)}},
		}, out, nil
	})
}

// Run serves server on stdin/stdout until the client disconnects or ctx is
// cancelled.
func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func renderText(lines []transcript.Line, timestamps bool) string {
	if len(lines) == 0 {
		return "(empty transcript)"
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if timestamps {
			b.WriteString("[" + transcript.FormatTimestamp(line.Start) + "] ")
		}
		b.WriteString(line.Text)
	}
	return b.String()
}
