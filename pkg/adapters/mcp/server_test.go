package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/internal/logging"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *[]any) {
	t.Helper()

	b := dsl.New("series")
	src := b.Source("src")
	r1 := b.Resistor("R1")
	r2 := b.Resistor("R2")
	sw := b.Switch("sw").Up()
	b.Wire(src.Live(), r1.A()).
		Wire(r1.B(), sw.Common()).
		Wire(sw.L1(), r2.A()).
		Wire(r2.B(), src.Neutral())
	loader, err := b.Build()
	require.NoError(t, err)

	var origins []any
	engine, err := circuit.New("", circuit.WithLoader(loader), circuit.WithLifecycleHooks(domain.LifecycleHooks{
		OnSwitchPosition: func(_ context.Context, e *domain.SwitchEvent) {
			origins = append(origins, e.Origin)
		},
	}))
	require.NoError(t, err)

	return NewServer(engine, logging.NewNop()), &origins
}

func TestTools_Operations(t *testing.T) {
	s, origins := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	status, err := s.handleStatus(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationIncomplete, status.Classification)

	got, err := s.handleTest(ctx, req, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationClosed, got.Classification)
	assert.Equal(t, []string{"R1", "R2"}, got.Snapshot.Active)

	got, err = s.handleSetSwitch(ctx, req, switchArgs{ID: "sw"})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationOpen, got.Classification, "toggle to L2 leaves the loop open")

	up := true
	got, err = s.handleSetSwitch(ctx, req, switchArgs{ID: "sw", Up: &up})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationClosed, got.Classification)
	assert.Equal(t, []any{mcpOrigin, mcpOrigin}, *origins)

	got, err = s.handleDisconnect(ctx, req, disconnectArgs{Terminal: "R2.b"})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationOpen, got.Classification)

	got, err = s.handleConnect(ctx, req, connectArgs{From: "sw.l2", To: "src.neutral"})
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationOpen, got.Classification, "switch is on L1")
	assert.Contains(t, got.Snapshot.Links, domain.Link{From: "sw.l2", To: "src.neutral"})
}

func TestTools_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleConnect(ctx, req, connectArgs{From: "R1.a"})
	assert.Error(t, err)

	_, err = s.handleConnect(ctx, req, connectArgs{From: "R1.a", To: "R9.b"})
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)

	_, err = s.handleDisconnect(ctx, req, disconnectArgs{})
	assert.Error(t, err)

	_, err = s.handleSetSwitch(ctx, req, switchArgs{ID: "R1"})
	assert.ErrorIs(t, err, domain.ErrNotASwitch)
}

func TestServer_ListsToolsAndResources(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp := s.mcpServer.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"status", "test", "connect", "disconnect", "set_switch"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}

	resp = s.mcpServer.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"circuit://graph"}}`))
	raw, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "graph LR")
}
