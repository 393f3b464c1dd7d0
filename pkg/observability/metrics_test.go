package observability_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/observability"
	"github.com/aretw0/jza/pkg/symbol"
)

func instrumented(t *testing.T, hooks domain.LifecycleHooks) *automaton.Automaton {
	t.Helper()
	a := automaton.New(automaton.WithSeed(7), automaton.WithHooks(hooks))
	s0 := a.AddState("S0", true, false)
	s1 := a.AddState("S1", false, true)
	a.AddTransition(symbol.MustParse("IM"), s0.ID, s1.ID, 1)
	return a
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	a := instrumented(t, m.Hooks())
	im := symbol.MustParse("IM")

	require.NoError(t, a.TrainSequence([]domain.Symbol{im}))
	require.Error(t, a.TrainSequence([]domain.Symbol{symbol.MustParse("Vx")}))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SequencesTrained.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SequencesTrained.WithLabelValues("rejected")))

	assert.True(t, a.Validate([]domain.Symbol{im}))
	assert.False(t, a.Validate([]domain.Symbol{im, im}))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("rejected")))

	_, err := a.GenerateNLengthSequence(1, im, im)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("n-length", "ok")))

	_, err = a.GenerateNLengthSequence(0, im, im)
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("n-length", "error")))

	m.Hooks().OnRetry(&domain.RetryEvent{Operation: "prepend", Attempt: 1})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries.WithLabelValues("prepend")))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.SetModelSize(3, 7)
	m.RecordHTTPRequest("GET", "/health", "200", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "jza_model_states 3")
	assert.Contains(t, string(body), "jza_model_transitions 7")
	assert.Contains(t, string(body), `jza_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestComposeHooks(t *testing.T) {
	var first, second int
	hooks := observability.ComposeHooks(
		domain.LifecycleHooks{OnTrain: func(*domain.TrainEvent) { first++ }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnTrain: func(*domain.TrainEvent) { second++ }},
	)

	hooks.OnTrain(&domain.TrainEvent{Accepted: true})
	hooks.OnValidate(&domain.ValidateEvent{})
	hooks.OnGenerate(&domain.GenerateEvent{})
	hooks.OnRetry(&domain.RetryEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
