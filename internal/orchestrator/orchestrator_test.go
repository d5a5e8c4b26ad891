package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/freight-cli/internal/executor"
	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/normalize"
	"github.com/sells-group/freight-cli/internal/prompt"
)

// fakeCaller answers call i with replies[i]; an error reply fails the call.
type fakeCaller struct {
	replies []any
	prompts []string
	events  *[]string
}

func (f *fakeCaller) Execute(_ context.Context, req llm.Request) (*llm.Response, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, req.Prompt)
	if f.events != nil {
		*f.events = append(*f.events, fmt.Sprintf("call-%d", i))
	}
	if i >= len(f.replies) {
		return nil, errors.New("unexpected call")
	}
	switch r := f.replies[i].(type) {
	case error:
		return nil, r
	case string:
		return &llm.Response{Text: r, Grounding: []llm.Grounding{{Kind: "web", URI: "https://src"}}}, nil
	default:
		panic("bad reply")
	}
}

type sleeps struct {
	delays []time.Duration
	events *[]string
}

func (s *sleeps) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	if s.events != nil {
		*s.events = append(*s.events, "sleep")
	}
	return ctx.Err()
}

func facilityPlan(q model.FacilityQuery) Plan[model.Facility] {
	return Plan[model.Facility]{
		Domain: model.DomainFacilities,
		Slices: FacilitySlices(q),
		Request: func(s model.ScopeSlice) llm.Request {
			return llm.Request{Model: "m", Prompt: prompt.Facilities(q, s).Render()}
		},
		Parse: normalize.Facilities,
		Key:   func(f model.Facility) string { return f.Code },
	}
}

func newTestOrchestrator(c Caller, s *sleeps) *Orchestrator {
	return New(c, WithSleep(s.sleep))
}

func TestRun_SingleSliceNoPacing(t *testing.T) {
	c := &fakeCaller{replies: []any{`[{"name":"Belawan","code":"IDBLW","type":"Port"}]`}}
	s := &sleeps{}

	q := model.FacilityQuery{Continent: "Asia", Region: "South-Eastern Asia", Country: "Indonesia"}
	got, err := Run(context.Background(), newTestOrchestrator(c, s), facilityPlan(q))
	require.NoError(t, err)

	assert.Len(t, c.prompts, 1)
	assert.Empty(t, s.delays)
	require.Len(t, got, 1)
	assert.Equal(t, "IDBLW", got[0].Code)
	require.Len(t, got[0].Sources, 1)
	assert.Equal(t, "https://src", got[0].Sources[0].URI)
}

func TestRun_ContinentFansOutSequentially(t *testing.T) {
	var events []string
	c := &fakeCaller{events: &events, replies: []any{
		`[{"code":"A1","name":"a1"}]`,
		`[{"code":"B1","name":"b1"}]`,
		`[{"code":"C1","name":"c1"}]`,
		`[{"code":"D1","name":"d1"}]`,
		`[{"code":"E1","name":"e1"}]`,
	}}
	s := &sleeps{events: &events}

	got, err := Run(context.Background(), newTestOrchestrator(c, s), facilityPlan(model.FacilityQuery{Continent: "Asia"}))
	require.NoError(t, err)

	require.Len(t, c.prompts, 5)
	assert.Contains(t, c.prompts[0], "SCOPE: Asia, South-Eastern Asia, ALL")
	assert.Contains(t, c.prompts[1], "SCOPE: Asia, Eastern Asia, ALL")
	assert.Contains(t, c.prompts[4], "SCOPE: Asia, Central Asia, ALL")

	assert.Equal(t, []time.Duration{DefaultPacing, DefaultPacing, DefaultPacing, DefaultPacing}, s.delays)
	assert.Equal(t, []string{"call-0", "sleep", "call-1", "sleep", "call-2", "sleep", "call-3", "sleep", "call-4"}, events)
	assert.Len(t, got, 5)
}

func TestRun_DedupeLastWriteWinsFirstPosition(t *testing.T) {
	c := &fakeCaller{replies: []any{
		`[{"code":"X","name":"first"},{"code":"Y","name":"y"}]`,
		`[{"code":"Z","name":"z"},{"code":"X","name":"second"}]`,
	}}
	s := &sleeps{}

	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{Region: "r1"}, {Region: "r2"}}

	got, err := Run(context.Background(), newTestOrchestrator(c, s), p)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "X", got[0].Code)
	assert.Equal(t, "second", got[0].Name)
	assert.Equal(t, "Y", got[1].Code)
	assert.Equal(t, "Z", got[2].Code)
}

func TestRun_PartialFailureAbsorbed(t *testing.T) {
	c := &fakeCaller{replies: []any{
		&executor.ModelCallError{Provider: "gemini", Model: "m", Attempts: 3, RateLimited: true, Err: errors.New("429")},
		"I am sorry, I cannot help with that.",
		`[{"code":"OK","name":"ok"}]`,
	}}
	s := &sleeps{}

	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{Region: "a"}, {Region: "b"}, {Region: "c"}}

	got, err := Run(context.Background(), newTestOrchestrator(c, s), p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "OK", got[0].Code)
	assert.Len(t, c.prompts, 3, "no orchestration-level retry")
	assert.Len(t, s.delays, 2, "pacing applies regardless of slice outcome")
}

func TestRun_AllSlicesFail(t *testing.T) {
	c := &fakeCaller{replies: []any{errors.New("boom"), "not json"}}
	s := &sleeps{}

	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{Region: "a"}, {Region: "b"}}

	got, err := Run(context.Background(), newTestOrchestrator(c, s), p)
	assert.Nil(t, got)

	var oe *OrchestrationError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, model.DomainFacilities, oe.Domain)
	assert.Equal(t, 2, oe.Slices)
	require.Len(t, oe.Failures, 2)
	assert.Equal(t, "a", oe.Failures[0].Slice.Region)

	var me *normalize.MalformedResponseError
	assert.True(t, errors.As(oe.Failures[1].Err, &me))
	assert.NotEmpty(t, oe.UserMessage())
	assert.NotEqual(t, oe.Error(), oe.UserMessage())
}

func TestRun_EmptySuccessIsError(t *testing.T) {
	c := &fakeCaller{replies: []any{"[]"}}
	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{Region: "a"}}

	_, err := Run(context.Background(), newTestOrchestrator(c, &sleeps{}), p)

	var oe *OrchestrationError
	require.True(t, errors.As(err, &oe))
	assert.Empty(t, oe.Failures)
}

func TestRun_FinishStampsItems(t *testing.T) {
	c := &fakeCaller{replies: []any{`[{"destinationAirport":"NRT"}]`}}
	p := Plan[model.AirRate]{
		Domain:  model.DomainAirRates,
		Slices:  []model.ScopeSlice{{Destination: model.DestinationAsia}},
		Request: func(model.ScopeSlice) llm.Request { return llm.Request{} },
		Parse:   normalize.AirRates,
		Finish: func(a *model.AirRate, s model.ScopeSlice) {
			a.WeightBreak = string(model.WeightP100)
			a.Region = string(s.Destination)
		},
	}

	got, err := Run(context.Background(), newTestOrchestrator(c, &sleeps{}), p)
	require.NoError(t, err)
	assert.Equal(t, "+100 Kg", got[0].WeightBreak)
	assert.Equal(t, "Asia", got[0].Region)
}

func TestRun_CanceledDuringPacing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &fakeCaller{replies: []any{`[{"code":"A"}]`, `[{"code":"B"}]`}}

	o := New(c, WithSleep(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}))
	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{Region: "a"}, {Region: "b"}}

	_, err := Run(ctx, o, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, c.prompts, 1)
}

type cancelingCaller struct{ cancel context.CancelFunc }

func (c cancelingCaller) Execute(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	c.cancel()
	return nil, ctx.Err()
}

func TestRun_CanceledDuringLastSlice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := facilityPlan(model.FacilityQuery{Continent: "Asia", Region: "Eastern Asia"})

	_, err := Run(ctx, newTestOrchestrator(cancelingCaller{cancel: cancel}, &sleeps{}), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	var oe *OrchestrationError
	assert.False(t, errors.As(err, &oe))
}

func TestRun_CustomIDs(t *testing.T) {
	c := &fakeCaller{replies: []any{`[{"code":"A"},{"code":"B"}]`}}
	n := 0
	o := New(c, WithSleep((&sleeps{}).sleep), WithIDs(func() string { n++; return fmt.Sprintf("fac-%d", n) }))

	p := facilityPlan(model.FacilityQuery{})
	p.Slices = []model.ScopeSlice{{}}

	got, err := Run(context.Background(), o, p)
	require.NoError(t, err)
	assert.Equal(t, "fac-1", got[0].ID)
	assert.Equal(t, "fac-2", got[1].ID)
}

func TestDedupe_EmptyKeysKept(t *testing.T) {
	got := dedupe([]string{"a", "", "a", ""}, func(s string) string { return s })
	assert.Equal(t, []string{"a", "", ""}, got)
}
