// Package mcpserver exposes the renderer to agents over the Model Context
// Protocol on stdio.
//
// The server offers a single tool, render_resume_pdf. Its text result is
// either the indented JSON outcome of a render or an error envelope with
// error_code, message, suggestion and next_action.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	resumefit "github.com/alnah/go-resumefit"
	"github.com/alnah/go-resumefit/internal/hints"
)

// Protocol names.
const (
	ServerName = "resume-autofit-server"
	ToolName   = "render_resume_pdf"
)

// Tool argument names.
const (
	argMarkdown   = "markdown"
	argOutputPath = "output_path"
)

// emptyContentExample shows the expected Markdown shape in EMPTY_CONTENT replies.
const emptyContentExample = "## Experience\n\n**Company Name** · Job Title\n- Achievement 1\n- Achievement 2"

// Renderer renders one resume. *resumefit.Renderer satisfies it.
type Renderer interface {
	Render(ctx context.Context, req resumefit.Request) (*resumefit.Outcome, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*resumefit.Renderer)(nil)

// errorEnvelope is the text result of a failed call.
type errorEnvelope struct {
	Status     resumefit.Status `json:"status"`
	ErrorCode  string           `json:"error_code"`
	Message    string           `json:"message"`
	Suggestion string           `json:"suggestion"`
	NextAction string           `json:"next_action"`
	Example    string           `json:"example,omitempty"`
}

// Server wires a Renderer to an MCP server.
type Server struct {
	renderer Renderer
	logger   *slog.Logger
	mcp      *server.MCPServer
}

// New creates a server. A nil logger discards output; stdout is reserved for
// protocol traffic, so callers should log to stderr.
func New(r Renderer, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		renderer: r,
		logger:   logger,
		mcp: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.mcp.AddTool(renderTool(), s.handleRender)
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve handles protocol messages from in to out until ctx is cancelled or
// in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("mcp server listening", slog.String("server", ServerName))
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func renderTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription(toolDescription),
		mcp.WithString(argMarkdown,
			mcp.Required(),
			mcp.Description("Resume content in Markdown format. Use ## for section headers (Education, Experience, Skills), "+
				"**bold** for job titles and companies, - for bullet points."),
		),
		mcp.WithString(argOutputPath,
			mcp.Description("Path for the PDF. Relative paths land in the output directory. "+
				"Default: ./generated_resume/output_resume.pdf. Recommended format: Name_Company_Position.pdf"),
		),
		mcp.WithTitleAnnotation("Resume PDF Renderer"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

const toolDescription = `Render resume Markdown to PDF with single-page fitting detection.

FUNCTIONALITY:
- Converts a Markdown resume to a formatted A4 PDF
- Detects page overflow and returns reduction suggestions
- Detects sparse content and returns expansion suggestions
- Supports an iterative optimization loop with the agent

RETURNS:
- status: "success" | "overflow" | "error"
- pdf_path: absolute path of the generated PDF
- current_pages, overflow_amount, fill_ratio
- hint: actionable suggestion for content adjustment
- content_stats: word, character, heading, list item and paragraph counts
- auto_fit_status: whether the document's auto-fit ran and its result

WORKFLOW:
1. Call with the initial Markdown content
2. If "overflow": apply the reduction strategy from hint, retry
3. If "success" with a low fill_ratio: consider adding content
4. Repeat until satisfied`

// handleRender never returns a Go error: every failure becomes an envelope
// the agent can act on.
func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	markdown := req.GetString(argMarkdown, "")
	if strings.TrimSpace(markdown) == "" {
		s.logger.Info("rejected empty markdown")
		r := hints.ForEmptyContent()
		return envelopeResult(errorEnvelope{
			Status:     resumefit.StatusError,
			ErrorCode:  resumefit.CodeEmptyContent,
			Message:    "Markdown content cannot be empty",
			Suggestion: r.Suggestion,
			NextAction: r.NextAction,
			Example:    emptyContentExample,
		}), nil
	}

	out, err := s.renderer.Render(ctx, resumefit.Request{
		Markdown:   markdown,
		OutputPath: req.GetString(argOutputPath, ""),
	})
	if err != nil {
		s.logger.Error("render failed", slog.Any("error", err), slog.String("kind", resumefit.KindOf(err).String()))
		return envelopeResult(failureEnvelope(err)), nil
	}

	data, err := out.JSON()
	if err != nil {
		return envelopeResult(failureEnvelope(err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// failureEnvelope maps err to a RENDER_FAILED (or EMPTY_CONTENT) envelope.
// Guidance comes from the error kind, not from matching its text.
func failureEnvelope(err error) errorEnvelope {
	env := errorEnvelope{
		Status:    resumefit.StatusError,
		ErrorCode: resumefit.CodeRenderFailed,
		Message:   "Rendering failed: " + err.Error(),
	}

	var re *resumefit.RenderError
	if errors.As(err, &re) {
		env.ErrorCode = re.Code()
		env.Suggestion = re.Suggestion
		env.NextAction = re.NextAction
		return env
	}

	r := hints.ForInternal()
	env.Suggestion = r.Suggestion
	env.NextAction = r.NextAction
	return env
}

func envelopeResult(env errorEnvelope) *mcp.CallToolResult {
	data, err := json.Marshal(env)
	if err != nil {
		// Only strings are marshaled; this cannot fail.
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(data))
}
