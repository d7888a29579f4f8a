package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/internal/service/command"
	"github.com/sandevgo/brainchat/internal/service/session"
	"github.com/sandevgo/brainchat/pkg/log"
)

const serverName = "brain"

// Server exposes the brain operations as MCP tools over stdio.
type Server struct {
	brain     core.Brain
	cfg       core.BrainConfig
	resolve   func(string) string
	records   *session.RecordStore
	mcp       *server.MCPServer
	in        io.Reader
	out       io.Writer
	formatter *command.ResponseFormatter
}

func NewServer(b core.Brain, cfg core.BrainConfig, resolve func(string) string, in io.Reader, out io.Writer) *Server {
	s := &Server{
		brain:     b,
		cfg:       cfg,
		resolve:   resolve,
		records:   session.NewRecordStore(nil),
		in:        in,
		out:       out,
		formatter: command.NewResponseFormatter(),
	}

	s.mcp = server.NewMCPServer(serverName, core.AppVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("brain_interact",
		mcp.WithDescription("Send a message to the brain and get its reply. The reply carries a message_id usable with brain_feedback."),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message for the brain")),
	), s.handleInteract)

	s.mcp.AddTool(mcp.NewTool("brain_feedback",
		mcp.WithDescription("Rate a previous brain reply as good or bad."),
		mcp.WithString("message_id", mcp.Required(), mcp.Description("message_id returned by brain_interact")),
		mcp.WithBoolean("positive", mcp.Required(), mcp.Description("true for a good reply, false for a bad one")),
	), s.handleFeedback)

	s.mcp.AddTool(mcp.NewTool("brain_search_memory",
		mcp.WithDescription("Retrieve memories related to a query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithNumber("top_k", mcp.Description("Number of memories to return")),
	), s.handleSearchMemory)

	s.mcp.AddTool(mcp.NewTool("brain_explore_web",
		mcp.WithDescription("Let the brain crawl queued URLs."),
		mcp.WithNumber("max_pages", mcp.Description("Pages to explore")),
	), s.handleExploreWeb)

	s.mcp.AddTool(mcp.NewTool("brain_add_url",
		mcp.WithDescription("Queue a URL for web exploration."),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL to explore")),
	), s.handleAddURL)

	s.mcp.AddTool(mcp.NewTool("brain_status",
		mcp.WithDescription("Show brain statistics."),
	), s.handleStatus)

	s.mcp.AddTool(mcp.NewTool("brain_visualize_memory",
		mcp.WithDescription("Render the memory network and return the image URL."),
	), s.handleVisualize)

	s.mcp.AddTool(mcp.NewTool("brain_save",
		mcp.WithDescription("Ask the brain to persist its state."),
	), s.handleSave)
}

// Start serves stdio until ctx ends or stdin closes.
func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp stdio server")

	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, s.in, s.out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) handleInteract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	res, err := s.brain.Interact(ctx, strings.TrimSpace(message))
	if err != nil {
		return s.toolError(ctx, "interact", err), nil
	}

	id := s.records.Add(core.Record{Input: res.Input, Output: res.Response, Timestamp: res.Timestamp})
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\nmessage_id: %s", res.Response, id)), nil
}

func (s *Server) handleFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("message_id")
	if err != nil {
		return mcp.NewToolResultError("message_id is required"), nil
	}
	positive, err := req.RequireBool("positive")
	if err != nil {
		return mcp.NewToolResultError("positive is required"), nil
	}

	rec, ok := s.records.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown message_id %q", id)), nil
	}

	msg, err := s.brain.Feedback(ctx, core.Feedback{
		MessageID:  id,
		Input:      rec.Input,
		Output:     rec.Output,
		IsPositive: positive,
	})
	if err != nil {
		return s.toolError(ctx, "feedback", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) handleSearchMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	topK := req.GetInt("top_k", s.cfg.GetMemoryTopK())
	if topK <= 0 {
		topK = s.cfg.GetMemoryTopK()
	}

	items, err := s.brain.RetrieveMemory(ctx, strings.TrimSpace(query), topK)
	if err != nil {
		return s.toolError(ctx, "retrieve_memory", err), nil
	}

	rendered := session.RenderMemories(items)
	if len(rendered) == 0 {
		return mcp.NewToolResultText(session.MsgNoMemories), nil
	}

	var sb strings.Builder
	for i, m := range rendered {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("[%d] importance %s, created %s\n%s\n", i+1, m.Importance, m.CreatedAt, m.Content))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleExploreWeb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages := req.GetInt("max_pages", s.cfg.GetDefaultPages())
	if pages <= 0 {
		pages = s.cfg.GetDefaultPages()
	}

	explored, err := s.brain.ExploreWeb(ctx, pages)
	if err != nil {
		return s.toolError(ctx, "explore_web", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exploration finished! %d pages explored.", explored)), nil
}

func (s *Server) handleAddURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil || strings.TrimSpace(url) == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	msg, err := s.brain.AddURL(ctx, strings.TrimSpace(url))
	if err != nil {
		return s.toolError(ctx, "add_url", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.brain.Status(ctx)
	if err != nil {
		return s.toolError(ctx, "status", err), nil
	}
	return mcp.NewToolResultText(command.FormatStats(s.formatter, stats)), nil
}

func (s *Server) handleVisualize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := s.brain.VisualizeMemory(ctx)
	if err != nil {
		return s.toolError(ctx, "visualize_memory", err), nil
	}
	return mcp.NewToolResultText(s.resolve(ref)), nil
}

func (s *Server) handleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := s.brain.SaveBrain(ctx)
	if err != nil {
		return s.toolError(ctx, "save_brain", err), nil
	}
	return mcp.NewToolResultText(msg), nil
}

// toolError reports failures as tool results so the caller model sees them.
func (s *Server) toolError(ctx context.Context, op string, err error) *mcp.CallToolResult {
	if apiErr, ok := brain.AsAPIError(err); ok {
		return mcp.NewToolResultError("Error: " + apiErr.UserMessage())
	}
	log.FromCtx(ctx).Error().Err(err).Str("op", op).Msg("brain request failed")
	return mcp.NewToolResultError("brain is unreachable: " + err.Error())
}
