package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestCORSMiddlewareSetsHeaders(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodGet)

	CORSMiddleware()(context.Background(), ctx)

	for header, want := range map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": corsAllowMethods,
		"Access-Control-Allow-Headers": corsAllowHeaders,
	} {
		if got := string(ctx.Response.Header.Peek(header)); got != want {
			t.Fatalf("%s mismatch: got=%q want=%q", header, got, want)
		}
	}
	if got := ctx.Response.StatusCode(); got == consts.StatusNoContent {
		t.Fatalf("GET was short-circuited: status=%d", got)
	}
}

func TestCORSMiddlewareShortCircuitsPreflight(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)

	CORSMiddleware()(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNoContent; got != want {
		t.Fatalf("preflight status: got=%d want=%d", got, want)
	}
	if got := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")); got != "*" {
		t.Fatalf("preflight missing allow-origin: got=%q", got)
	}
}
