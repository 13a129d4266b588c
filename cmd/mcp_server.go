package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/input"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/platform"
	"github.com/uiprobe/uiprobe/internal/resolver"
	"github.com/uiprobe/uiprobe/internal/runner"
	"github.com/uiprobe/uiprobe/internal/server"
	"github.com/uiprobe/uiprobe/internal/ui"
	"github.com/uiprobe/uiprobe/internal/walker"
)

// mcpServer wraps the MCP server with the platform provider and a
// snapshot cache. providerMu serializes all tool handlers: the
// accessibility layer, input posting, and overlay windows all belong to
// one UI context, so concurrent tool calls must queue.
type mcpServer struct {
	provider   *platform.Provider
	runner     *runner.Runner
	highlights *highlight.Manager
	cache      *server.SnapshotCache
	tok        ui.Token
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer creates and configures an MCP server with all uiprobe tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	var highlights *highlight.Manager
	if provider.Presenter != nil {
		highlights = highlight.NewManager(provider.Presenter, 0)
	}
	s := &mcpServer{
		provider:   provider,
		highlights: highlights,
		runner: runner.New(
			walker.Traverser{Sys: provider.System},
			provider.Launcher,
			provider.Input,
			highlights,
		),
		cache: server.NewSnapshotCache(cfg.CacheTTL),
		tok:   ui.Init(),
	}

	s.mcp = mcpserver.NewMCPServer(
		"uiprobe",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// list
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List running applications"),
			mcp.WithBoolean("all", mcp.Description("Include background-only processes")),
		),
		s.handleList,
	)

	// snapshot
	s.mcp.AddTool(
		mcp.NewTool("snapshot",
			mcp.WithDescription("Walk an application's accessibility tree into a flat, ordered snapshot of its interactable elements"),
			mcp.WithString("app", mcp.Description("Application name or bundle ID")),
			mcp.WithNumber("pid", mcp.Description("Process ID")),
			mcp.WithBoolean("visible-only", mcp.Description("Only include elements with on-screen geometry")),
			mcp.WithBoolean("activate", mcp.Description("Bring the application to the foreground first")),
		),
		s.handleSnapshot,
	)

	// act
	s.mcp.AddTool(
		mcp.NewTool("act",
			mcp.WithDescription("Perform an input action (click, key combo, typed text, drag) with optional before/after snapshots, a diff of the two, and on-screen highlighting of the changes"),
			mcp.WithString("app", mcp.Description("Application name or bundle ID")),
			mcp.WithNumber("pid", mcp.Description("Process ID")),
			mcp.WithString("click", mcp.Description("Click at 'x,y'")),
			mcp.WithString("double-click", mcp.Description("Double-click at 'x,y'")),
			mcp.WithString("right-click", mcp.Description("Right-click at 'x,y'")),
			mcp.WithString("key", mcp.Description("Key combo (e.g. 'cmd+shift+s', 'enter')")),
			mcp.WithString("type", mcp.Description("Text to type into the focused element")),
			mcp.WithBoolean("show-diff", mcp.Description("Snapshot before and after, report the diff")),
			mcp.WithBoolean("highlight", mcp.Description("Highlight changed elements on screen")),
			mcp.WithNumber("settle", mcp.Description("Milliseconds to wait between action and after-snapshot")),
			mcp.WithBoolean("visible-only", mcp.Description("Only include elements with on-screen geometry")),
		),
		s.handleAct,
	)

	// resolve
	s.mcp.AddTool(
		mcp.NewTool("resolve",
			mcp.WithDescription("Resolve an OS window identifier to its accessibility window, using the window's last known bounds when the OS exposes no direct mapping"),
			mcp.WithString("app", mcp.Description("Owning application name or bundle ID")),
			mcp.WithNumber("pid", mcp.Description("Owning process ID")),
			mcp.WithNumber("window-id", mcp.Description("OS window identifier"), mcp.Required()),
			mcp.WithString("bounds", mcp.Description("Expected window bounds as 'x,y,w,h'"), mcp.Required()),
			mcp.WithString("title", mcp.Description("Expected window title")),
		),
		s.handleResolve,
	)

	// open
	s.mcp.AddTool(
		mcp.NewTool("open",
			mcp.WithDescription("Open an application by name, bundle ID, or path; activates a running instance instead of launching a second copy"),
			mcp.WithString("identifier", mcp.Description("Application name, bundle ID, or path"), mcp.Required()),
		),
		s.handleOpen,
	)
}

// toText serializes a handler result to YAML for the MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

func (s *mcpServer) resolveTarget(params map[string]interface{}) (int, error) {
	pid := IntParam(params, "pid", 0)
	appName := StringParam(params, "app", "")
	return resolvePID(s.provider, pid, appName)
}

func (s *mcpServer) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := BoolParam(request.GetArguments(), "all", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	var entries []listedApp
	for _, app := range s.provider.System.RunningApplications() {
		if !all && !app.Foreground {
			continue
		}
		entries = append(entries, listedApp{
			PID:       app.PID,
			Name:      app.Name,
			BundleID:  app.BundleID,
			Frontmost: app.Frontmost,
		})
	}
	return mcp.NewToolResultText(toText(entries)), nil
}

func (s *mcpServer) handleSnapshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	visibleOnly := BoolParam(params, "visible-only", false)
	activate := BoolParam(params, "activate", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	pid, err := s.resolveTarget(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := s.cache.Get(pid, visibleOnly, func() (*model.Snapshot, error) {
		return walker.Walk(s.provider.System, walker.Options{
			PID:         pid,
			VisibleOnly: visibleOnly,
			Activate:    activate,
		})
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(snap)), nil
}

func (s *mcpServer) handleAct(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	pid, err := s.resolveTarget(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	op, err := inputOpFromParams(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action := runner.Action{Kind: runner.ActionTraverse}
	if op != nil {
		action = runner.Action{Kind: runner.ActionInput, Input: op}
	}

	res := s.runner.Run(s.tok, action, runner.Options{
		PID:         pid,
		ShowDiff:    BoolParam(params, "show-diff", false),
		VisibleOnly: BoolParam(params, "visible-only", false),
		Highlight:   BoolParam(params, "highlight", false),
		SettleDelay: time.Duration(IntParam(params, "settle", 0)) * time.Millisecond,
	})

	// The action presumably changed the target's UI.
	s.cache.InvalidatePID(pid)

	return mcp.NewToolResultText(toText(res)), nil
}

// inputOpFromParams mirrors buildInputOp for the MCP argument map. A
// map with no action keys yields a nil op: the call is then pure
// observation.
func inputOpFromParams(params map[string]interface{}) (*input.Op, error) {
	var ops []*input.Op

	pointParam := func(key string, kind input.OpKind) error {
		s := StringParam(params, key, "")
		if s == "" {
			return nil
		}
		x, y, err := parsePoint(s)
		if err != nil {
			return err
		}
		ops = append(ops, &input.Op{Kind: kind, Point: input.Point{X: x, Y: y}})
		return nil
	}
	if err := pointParam("click", input.OpClick); err != nil {
		return nil, err
	}
	if err := pointParam("double-click", input.OpDoubleClick); err != nil {
		return nil, err
	}
	if err := pointParam("right-click", input.OpRightClick); err != nil {
		return nil, err
	}

	if combo := StringParam(params, "key", ""); combo != "" {
		code, modifiers, err := input.ParseKeyCombo(combo)
		if err != nil {
			return nil, err
		}
		ops = append(ops, &input.Op{Kind: input.OpKeyPress, KeyCode: code, Modifiers: modifiers})
	}
	if text := StringParam(params, "type", ""); text != "" {
		ops = append(ops, &input.Op{Kind: input.OpTypeText, Text: text})
	}

	switch len(ops) {
	case 0:
		return nil, nil
	case 1:
		return ops[0], nil
	default:
		return nil, fmt.Errorf("exactly one action parameter may be given")
	}
}

func (s *mcpServer) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	windowID := IntParam(params, "window-id", 0)
	title := StringParam(params, "title", "")

	bounds, err := parseBounds(StringParam(params, "bounds", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	pid, err := s.resolveTarget(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	identity := resolver.Resolve(s.provider.System, pid, uint32(windowID), bounds, title)
	if identity == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no accessibility window matches window id %d", windowID)), nil
	}
	return mcp.NewToolResultText(toText(identity)), nil
}

func (s *mcpServer) handleOpen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier := StringParam(request.GetArguments(), "identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("identifier is required"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if s.provider.Launcher == nil {
		return mcp.NewToolResultError("launching not available on this platform"), nil
	}
	opened, err := s.provider.Launcher.Open(identifier, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidatePID(opened.PID)
	return mcp.NewToolResultText(toText(opened)), nil
}
