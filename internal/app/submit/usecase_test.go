package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"dicehall/internal/domain/message"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
}

func newUseCase(log *fakeLog, roller *fakeRoller, channel *fakeChannel) UseCase {
	return UseCase{
		Log:         log,
		Roller:      roller,
		Channel:     channel,
		Lookup:      fakeLookup{addr: "1.2.3.4"},
		DisplayName: "alice",
		Now:         fixedNow,
	}
}

func TestExecute_InvalidCommandMakesNoCalls(t *testing.T) {
	log := &fakeLog{}
	roller := &fakeRoller{}
	channel := &fakeChannel{}
	uc := newUseCase(log, roller, channel)

	if err := uc.Execute(context.Background(), "hello"); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
	if log.calls != 0 || roller.calls != 0 || channel.calls != 0 {
		t.Fatalf("invalid command reached the transport: log=%d roll=%d publish=%d", log.calls, roller.calls, channel.calls)
	}
}

func TestExecute_LogBeforeRollThenPublish(t *testing.T) {
	var order []string
	log := &fakeLog{onCall: func() { order = append(order, "log") }}
	roller := &fakeRoller{onCall: func() { order = append(order, "roll") }}
	channel := &fakeChannel{onCall: func() { order = append(order, "publish") }}
	uc := newUseCase(log, roller, channel)

	if err := uc.Execute(context.Background(), "2d6"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(order) != 3 || order[0] != "log" || order[1] != "roll" || order[2] != "publish" {
		t.Fatalf("call order %v want [log roll publish]", order)
	}
}

func TestExecute_LogFailureDoesNotSkipRoll(t *testing.T) {
	log := &fakeLog{err: errors.New("log endpoint down")}
	roller := &fakeRoller{}
	channel := &fakeChannel{}
	uc := newUseCase(log, roller, channel)

	if err := uc.Execute(context.Background(), "1d6"); err != nil {
		t.Fatalf("log failure leaked: %v", err)
	}
	if roller.calls != 1 || channel.calls != 1 {
		t.Fatalf("roll=%d publish=%d want both 1", roller.calls, channel.calls)
	}
}

func TestExecute_LogFailureIsReported(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	uc := newUseCase(&fakeLog{err: errors.New("log endpoint down")}, &fakeRoller{}, &fakeChannel{})
	if err := uc.Execute(context.Background(), "1d6"); err != nil {
		t.Fatalf("log failure leaked: %v", err)
	}
	if !strings.Contains(buf.String(), "log endpoint down") {
		t.Fatalf("log failure not reported: %q", buf.String())
	}
}

func TestExecute_RollFailureSkipsPublish(t *testing.T) {
	wantErr := errors.New("no such die: d7")
	roller := &fakeRoller{err: wantErr}
	channel := &fakeChannel{}
	uc := newUseCase(&fakeLog{}, roller, channel)

	err := uc.Execute(context.Background(), "1d6")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected service detail to pass through, got %v", err)
	}
	if channel.calls != 0 {
		t.Fatalf("publish happened despite roll failure")
	}
}

func TestExecute_PublishFailureSurfaces(t *testing.T) {
	wantErr := errors.New("channel closed")
	channel := &fakeChannel{err: wantErr}
	uc := newUseCase(&fakeLog{}, &fakeRoller{}, channel)

	if err := uc.Execute(context.Background(), "1d6"); !errors.Is(err, wantErr) {
		t.Fatalf("expected channel error, got %v", err)
	}
}

func TestExecute_PlainRollRequestShape(t *testing.T) {
	roller := &fakeRoller{}
	uc := newUseCase(&fakeLog{}, roller, &fakeChannel{})

	if err := uc.Execute(context.Background(), " 2d6-1d4+3 "); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	req := roller.last
	if req.Command != "r" {
		t.Fatalf("Command=%q want r", req.Command)
	}
	if req.A1 != "2d6-1d4+3" {
		t.Fatalf("A1=%q want trimmed expression", req.A1)
	}
	if req.A2 != "" || req.A3 != "" || req.A4 != "" || req.A5 != "" || req.A6 != "" {
		t.Fatalf("slots 2-6 must be empty: %+v", req)
	}
	if req.Username != "alice" || req.IP != "1.2.3.4" || req.Time != "10:30:00" {
		t.Fatalf("provenance wrong: %+v", req)
	}
}

func TestExecute_NamedCommandArgsVerbatim(t *testing.T) {
	roller := &fakeRoller{}
	uc := newUseCase(&fakeLog{}, roller, &fakeChannel{})

	if err := uc.Execute(context.Background(), "ra 1 厨艺 -1"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	req := roller.last
	if req.Command != "ra" || req.A1 != "1" || req.A2 != "厨艺" || req.A3 != "-1" {
		t.Fatalf("args not positional verbatim: %+v", req)
	}
}

func TestExecute_EmptyDisplayNameFallsBack(t *testing.T) {
	roller := &fakeRoller{}
	uc := newUseCase(&fakeLog{}, roller, &fakeChannel{})
	uc.DisplayName = ""

	if err := uc.Execute(context.Background(), "1d6"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if roller.last.Username != DefaultDisplayName {
		t.Fatalf("Username=%q want %q", roller.last.Username, DefaultDisplayName)
	}
}

func TestExecute_MissingLookupDegradesToUnknown(t *testing.T) {
	roller := &fakeRoller{}
	uc := newUseCase(&fakeLog{}, roller, &fakeChannel{})
	uc.Lookup = nil

	if err := uc.Execute(context.Background(), "1d6"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if roller.last.IP != "unknown" {
		t.Fatalf("IP=%q want unknown", roller.last.IP)
	}
}

func TestExecute_PublishesServiceResponseVerbatim(t *testing.T) {
	res := message.ResultMessage{
		Command:  "r",
		Result:   json.RawMessage(`["1d6",4,[4]]`),
		Username: "alice",
		IP:       "1.2.3.4",
		Time:     "10:30:00",
	}
	roller := &fakeRoller{res: res}
	channel := &fakeChannel{}
	uc := newUseCase(&fakeLog{}, roller, channel)

	if err := uc.Execute(context.Background(), "1d6"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if channel.last.Command != "r" || string(channel.last.Result) != `["1d6",4,[4]]` {
		t.Fatalf("published message differs from service response: %+v", channel.last)
	}
}

type fakeLog struct {
	calls  int
	err    error
	onCall func()
}

func (f *fakeLog) Log(_ context.Context, _ message.Request) error {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	return f.err
}

type fakeRoller struct {
	calls  int
	last   message.Request
	res    message.ResultMessage
	err    error
	onCall func()
}

func (f *fakeRoller) Roll(_ context.Context, req message.Request) (message.ResultMessage, error) {
	f.calls++
	f.last = req
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return message.ResultMessage{}, f.err
	}
	return f.res, nil
}

type fakeChannel struct {
	calls  int
	last   message.ResultMessage
	err    error
	onCall func()
}

func (f *fakeChannel) Publish(_ context.Context, msg message.ResultMessage) error {
	f.calls++
	f.last = msg
	if f.onCall != nil {
		f.onCall()
	}
	return f.err
}

type fakeLookup struct{ addr string }

func (f fakeLookup) Address(_ context.Context) string { return f.addr }
