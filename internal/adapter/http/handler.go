// Package httpadapter exposes the dice service over HTTP: roll computation,
// command logging, sheet uploads and the ops snapshot.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"dicehall/internal/app/journal"
	"dicehall/internal/app/ports"
	"dicehall/internal/app/roll"
	"dicehall/internal/app/sheet"
	"dicehall/internal/domain/character"
	"dicehall/internal/domain/message"
)

const commandHelpHint = "unrecognized command, see the command guide"

// wsServer serves the broadcast endpoint.
type wsServer interface {
	Serve(c context.Context, ctx *app.RequestContext)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	RollUC    roll.UseCase
	SheetUC   sheet.UseCase
	JournalUC journal.UseCase
	Hub       wsServer
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	dice := s.Group("/dice")
	dice.POST("/roll", h.roll)
	dice.POST("/log_command", h.logCommand)
	dice.POST("/upload_stats", h.uploadStats)
	dice.GET("/occupied_ids", h.occupiedIDs)
	if h.Hub != nil {
		dice.GET("/ws", h.Hub.Serve)
	}

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/recent_commands", h.recentCommands)
}

func (h Handler) roll(c context.Context, ctx *app.RequestContext) {
	var req message.Request
	if err := decodeJSON(ctx, &req); err != nil {
		writeDetail(ctx, consts.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.RollUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, res)
}

func (h Handler) logCommand(c context.Context, ctx *app.RequestContext) {
	var req message.Request
	if err := decodeJSON(ctx, &req); err != nil {
		writeDetail(ctx, consts.StatusBadRequest, "invalid json")
		return
	}

	if err := h.JournalUC.Execute(c, req); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"status": "success"})
}

type uploadStatsRequest struct {
	UserID    int    `json:"user_id"`
	Stats     string `json:"stats"`
	CreateNew bool   `json:"create_new"`
}

func (h Handler) uploadStats(c context.Context, ctx *app.RequestContext) {
	var body uploadStatsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeDetail(ctx, consts.StatusBadRequest, "invalid json")
		return
	}

	err := h.SheetUC.Upload(c, sheet.UploadRequest{
		PC:        body.UserID,
		Stats:     body.Stats,
		CreateNew: body.CreateNew,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"status": "success"})
}

func (h Handler) occupiedIDs(c context.Context, ctx *app.RequestContext) {
	ids, err := h.SheetUC.OccupiedIDs(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	ctx.JSON(consts.StatusOK, map[string][]int{"occupied_ids": ids})
}

const defaultRecentLimit = 50

type loggedCommand struct {
	message.Request
	LoggedAt time.Time `json:"logged_at"`
}

func (h Handler) recentCommands(c context.Context, ctx *app.RequestContext) {
	limit := defaultRecentLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeDetail(ctx, consts.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.JournalUC.Recent(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]loggedCommand, 0, len(records))
	for _, r := range records {
		out = append(out, loggedCommand{Request: r.Request, LoggedAt: r.LoggedAt})
	}
	ctx.JSON(consts.StatusOK, map[string][]loggedCommand{"commands": out})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeDetail(ctx, consts.StatusNotFound, "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// writeError maps sentinel errors onto statuses; every failure body carries
// a human-readable detail string.
func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, roll.ErrBadArguments):
		writeDetail(ctx, consts.StatusBadRequest, commandHelpHint)
	case errors.Is(err, roll.ErrSkillNotFound):
		writeDetail(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, sheet.ErrBadPCNumber):
		writeDetail(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, character.ErrBadUploadFormat):
		writeDetail(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeDetail(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeDetail(ctx, consts.StatusConflict, err.Error())
	default:
		writeDetail(ctx, consts.StatusInternalServerError, "internal error")
	}
}

func writeDetail(ctx *app.RequestContext, status int, detail string) {
	ctx.JSON(status, map[string]string{"detail": detail})
}
