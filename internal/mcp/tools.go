// Package mcp exposes the rating engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/http/requestutil"
	"github.com/preston-bernstein/squad-planner/internal/logging"
)

const serverName = "squad-planner"

// TacticsSource reads the session tactics, defaulting when unset.
type TacticsSource interface {
	Get(ctx context.Context, session string) (tactics.Tactics, error)
}

// SessionArgs selects the session a tool reads.
type SessionArgs struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Session id (default: default)"`
}

// ScorePlayerArgs is the input schema for score_player.
type ScorePlayerArgs struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Session id (default: default)"`
	PlayerID  string `json:"player_id" jsonschema:"Roster player id (required)"`
	Position  string `json:"position,omitempty" jsonschema:"Position code such as RB or ST (default: the player's main position)"`
}

// FormationsResult is the output of list_formations.
type FormationsResult struct {
	Current    string              `json:"current"`
	Formations []tactics.Formation `json:"formations"`
}

// Tools implements the tool handlers.
type Tools struct {
	analysis *analysis.Service
	tactics  TacticsSource
	logger   *slog.Logger
}

// NewTools constructs the tool handlers.
func NewTools(svc *analysis.Service, tac TacticsSource, logger *slog.Logger) *Tools {
	return &Tools{analysis: svc, tactics: tac, logger: logger}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(tools *Tools, version string) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: version}, nil)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "score_player",
		Description: "Rate one roster player at a position using the session's priorities and inverted flanks",
	}, tools.ScorePlayer)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "compute_analysis",
		Description: "Best XI, bench, squad categories and per-position/per-sector strength for the session",
	}, tools.ComputeAnalysis)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "categorize_roster",
		Description: "Split the roster into veterans, aging players and young stars",
	}, tools.CategorizeRoster)
	sdk.AddTool(server, &sdk.Tool{
		Name:        "list_formations",
		Description: "Formation templates and the session's current formation",
	}, tools.ListFormations)

	return server
}

// Handler serves server over streamable HTTP with plain JSON responses.
func Handler(server *sdk.Server) http.Handler {
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return server
	}, &sdk.StreamableHTTPOptions{JSONResponse: true})
}

// ScorePlayer handles score_player.
func (t *Tools) ScorePlayer(ctx context.Context, _ *sdk.CallToolRequest, args ScorePlayerArgs) (*sdk.CallToolResult, any, error) {
	session, err := resolveSession(args.SessionID)
	if err != nil {
		return toolError(err), nil, nil
	}
	if args.PlayerID == "" {
		return toolError(errors.New("player_id is required")), nil, nil
	}
	var pos positions.Position
	if args.Position != "" {
		parsed, ok := positions.Parse(args.Position)
		if !ok {
			return toolError(fmt.Errorf("unknown position %q", args.Position)), nil, nil
		}
		pos = parsed
	}
	rating, err := t.analysis.Rating(ctx, session, args.PlayerID, pos)
	return t.result(ctx, "score_player", session, rating, err)
}

// ComputeAnalysis handles compute_analysis.
func (t *Tools) ComputeAnalysis(ctx context.Context, _ *sdk.CallToolRequest, args SessionArgs) (*sdk.CallToolResult, any, error) {
	session, err := resolveSession(args.SessionID)
	if err != nil {
		return toolError(err), nil, nil
	}
	report, err := t.analysis.Analyze(ctx, session)
	return t.result(ctx, "compute_analysis", session, report, err)
}

// CategorizeRoster handles categorize_roster.
func (t *Tools) CategorizeRoster(ctx context.Context, _ *sdk.CallToolRequest, args SessionArgs) (*sdk.CallToolResult, any, error) {
	session, err := resolveSession(args.SessionID)
	if err != nil {
		return toolError(err), nil, nil
	}
	cats, err := t.analysis.Categories(ctx, session)
	return t.result(ctx, "categorize_roster", session, cats, err)
}

// ListFormations handles list_formations.
func (t *Tools) ListFormations(ctx context.Context, _ *sdk.CallToolRequest, args SessionArgs) (*sdk.CallToolResult, any, error) {
	session, err := resolveSession(args.SessionID)
	if err != nil {
		return toolError(err), nil, nil
	}
	out := FormationsResult{Formations: tactics.Formations()}
	if t.tactics != nil {
		current, err := t.tactics.Get(ctx, session)
		if err != nil {
			return t.result(ctx, "list_formations", session, nil, err)
		}
		out.Current = current.Formation
	}
	return t.result(ctx, "list_formations", session, out, nil)
}

func (t *Tools) result(ctx context.Context, tool, session string, payload any, err error) (*sdk.CallToolResult, any, error) {
	logger := logging.FromContext(ctx, t.logger)
	if err != nil {
		logging.Warn(logger, "mcp tool failed",
			"tool", tool,
			logging.FieldSessionID, session,
			"err", err,
		)
		return toolError(err), nil, nil
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	logging.Info(logger, "mcp tool served", "tool", tool, logging.FieldSessionID, session)
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
	}, nil, nil
}

func resolveSession(raw string) (string, error) {
	session, ok := requestutil.ParseSessionID(raw)
	if !ok {
		return "", fmt.Errorf("invalid session_id %q", raw)
	}
	return session, nil
}

func toolError(err error) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		IsError: true,
		Content: []sdk.Content{
			&sdk.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
