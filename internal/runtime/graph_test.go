package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/circuit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Classification(t *testing.T) {
	tests := []struct {
		name      string
		scene     domain.Scene
		want      domain.Classification
		resistors []string
		active    []string
	}{
		{
			name: "Short: live straight to neutral",
			scene: domain.Scene{
				Components: []domain.Component{comp("src", domain.KindPowerSource)},
				Links:      []domain.Link{link("src.live", "src.neutral")},
			},
			want:      domain.ClassificationShort,
			resistors: []string{},
			active:    []string{},
		},
		{
			name:      "Closed: series R1 R2",
			scene:     seriesScene(),
			want:      domain.ClassificationClosed,
			resistors: []string{"R1", "R2"},
			active:    []string{"R1", "R2"},
		},
		{
			name: "Open: dangling resistor is collected but inactive",
			scene: domain.Scene{
				Components: []domain.Component{
					comp("src", domain.KindPowerSource),
					comp("R1", domain.KindResistor),
				},
				Links: []domain.Link{link("src.live", "R1.a")},
			},
			want:      domain.ClassificationOpen,
			resistors: []string{"R1"},
			active:    []string{},
		},
		{
			name: "Open: live unconnected",
			scene: domain.Scene{
				Components: []domain.Component{
					comp("src", domain.KindPowerSource),
					comp("R1", domain.KindResistor),
				},
				Links: []domain.Link{link("R1.b", "src.neutral")},
			},
			want:      domain.ClassificationOpen,
			resistors: []string{},
			active:    []string{},
		},
		{
			name: "Closed: loop closes on neutral as receiver",
			scene: domain.Scene{
				Components: []domain.Component{
					comp("src", domain.KindPowerSource),
					comp("R1", domain.KindResistor),
				},
				Links: []domain.Link{
					link("R1.a", "src.live"),
					link("src.neutral", "R1.b"),
				},
			},
			want:      domain.ClassificationClosed,
			resistors: []string{"R1"},
			active:    []string{"R1"},
		},
		{
			name: "Closed: resistor wired backwards",
			scene: domain.Scene{
				Components: []domain.Component{
					comp("src", domain.KindPowerSource),
					comp("R1", domain.KindResistor),
				},
				Links: []domain.Link{
					link("src.live", "R1.b"),
					link("R1.a", "src.neutral"),
				},
			},
			want:      domain.ClassificationClosed,
			resistors: []string{"R1"},
			active:    []string{"R1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(t, tt.scene)

			got := e.Test(context.Background())
			assert.Equal(t, tt.want, got)

			snap := e.Snapshot()
			assert.Equal(t, tt.want, snap.Classification)
			assert.Equal(t, tt.resistors, snap.Resistors)
			assert.Equal(t, tt.active, snap.Active)
			assert.Equal(t, tt.want == domain.ClassificationShort, snap.ShortCircuit)
			assert.False(t, snap.Malformed)

			require.Len(t, rec.traces, 1)
			assert.Equal(t, tt.want, rec.traces[0].Classification)
			assert.Equal(t, domain.ReasonTest, rec.traces[0].Reason)
			require.Len(t, rec.shorts, 1)
			assert.Equal(t, tt.want == domain.ClassificationShort, rec.shorts[0])
		})
	}
}

func TestGraph_IncompleteBeforeFirstTrace(t *testing.T) {
	e, rec := newTestEngine(t, seriesScene())

	assert.Equal(t, domain.ClassificationIncomplete, e.Graph().Classification())
	assert.Empty(t, rec.traces)

	e.Test(context.Background())
	assert.Equal(t, domain.ClassificationClosed, e.Graph().Classification())
}

func TestGraph_Determinism(t *testing.T) {
	e, _ := newTestEngine(t, switchScene())
	ctx := context.Background()

	first := e.Test(ctx)
	firstSnap := e.Snapshot()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Test(ctx))
		snap := e.Snapshot()
		assert.Equal(t, firstSnap.Resistors, snap.Resistors)
		assert.Equal(t, firstSnap.Active, snap.Active)
	}
}

func TestGraph_SeriesActivation(t *testing.T) {
	e, rec := newTestEngine(t, seriesScene())

	e.Test(context.Background())

	require.Len(t, rec.activations, 2)
	assert.Equal(t, "R1", rec.activations[0].ComponentID)
	assert.True(t, rec.activations[0].Active)
	assert.Equal(t, "R2", rec.activations[1].ComponentID)
	assert.True(t, rec.activations[1].Active)

	ids := componentIDs(e.Graph().Resistors())
	assert.Equal(t, []string{"R1", "R2"}, ids)
}

func TestGraph_OpenDeactivatesPreviousResistors(t *testing.T) {
	e, rec := newTestEngine(t, seriesScene())
	ctx := context.Background()

	require.Equal(t, domain.ClassificationClosed, e.Test(ctx))
	require.True(t, e.components["R1"].Active())

	got, err := e.Disconnect(ctx, "R2.b")
	require.NoError(t, err)
	assert.Equal(t, domain.ClassificationOpen, got)

	last := rec.lastActivation()
	assert.False(t, last["R1"])
	assert.False(t, last["R2"])
	assert.False(t, e.components["R1"].Active())
	assert.False(t, e.components["R2"].Active())
	assert.Empty(t, e.Snapshot().Active)
}

func TestGraph_LightFollowsActivation(t *testing.T) {
	scene := domain.Scene{
		Components: []domain.Component{
			comp("src", domain.KindPowerSource),
			comp("lamp", domain.KindLight),
		},
		Links: []domain.Link{
			link("src.live", "lamp.a"),
			link("lamp.b", "src.neutral"),
		},
	}
	e, rec := newTestEngine(t, scene)
	ctx := context.Background()

	e.Test(ctx)
	lamp := e.components["lamp"]
	assert.True(t, lamp.Lit())
	require.NotEmpty(t, rec.activations)
	assert.Equal(t, domain.KindLight, rec.activations[0].Kind)

	_, err := e.Disconnect(ctx, "lamp.b")
	require.NoError(t, err)
	assert.False(t, lamp.Lit())
}

func TestGraph_MaxDepthMarksMalformed(t *testing.T) {
	e, rec := newTestEngine(t, seriesScene(), WithMaxDepth(2))

	got := e.Test(context.Background())

	assert.Equal(t, domain.ClassificationOpen, got)
	assert.True(t, e.Snapshot().Malformed)
	require.Len(t, rec.traces, 1)
	assert.True(t, rec.traces[0].Malformed)
	assert.Empty(t, e.Snapshot().Active)
}

func TestGraph_ReentrantTraceIsDeferred(t *testing.T) {
	e, rec := newTestEngine(t, seriesScene())
	ctx := context.Background()

	// The visual layer reacts to the first trace by pulling a connector.
	var rewired bool
	var inner domain.Classification
	var nestedDepth, maxNested int
	e.graph.hooks.OnTrace = func(ctx context.Context, ev *domain.TraceEvent) {
		nestedDepth++
		defer func() { nestedDepth-- }()
		if nestedDepth > maxNested {
			maxNested = nestedDepth
		}
		rec.traces = append(rec.traces, *ev)
		if !rewired {
			rewired = true
			var err error
			inner, err = e.Disconnect(ctx, "R2.b")
			require.NoError(t, err)
		}
	}

	got := e.Test(ctx)

	assert.Equal(t, domain.ClassificationIncomplete, inner, "a deferred trace has no result yet")
	assert.Equal(t, 1, maxNested, "hooks must not run nested traces")
	require.Len(t, rec.traces, 2)
	assert.Equal(t, domain.ClassificationClosed, rec.traces[0].Classification)
	assert.Equal(t, domain.ReasonTest, rec.traces[0].Reason)
	assert.Equal(t, domain.ClassificationOpen, rec.traces[1].Classification)
	assert.Equal(t, domain.ReasonRewire, rec.traces[1].Reason)
	assert.Equal(t, domain.ClassificationOpen, got)
	assert.Equal(t, 2, e.Snapshot().Traces)
}

func TestGraph_RunawayHooksAreBounded(t *testing.T) {
	e, _ := newTestEngine(t, seriesScene())
	ctx := context.Background()

	passes := 0
	e.graph.hooks.OnTrace = func(ctx context.Context, _ *domain.TraceEvent) {
		passes++
		e.Test(ctx)
	}

	e.Test(ctx)
	assert.Equal(t, maxDeferredPasses+1, passes)
}

func TestNewGraph_PanicsWithoutPowerSource(t *testing.T) {
	assert.Panics(t, func() {
		newGraph(nil, newLinkTable())
	})
	assert.Panics(t, func() {
		NewEngine(domain.Scene{Components: []domain.Component{comp("R1", domain.KindResistor)}})
	})
}
