package executor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/credential"
	"github.com/spetersoncode/genstudio/retry"
	"github.com/spetersoncode/genstudio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeProvider records the secret it was built with.
type fakeProvider struct {
	genstudio.Provider
	secret string
}

func fakeFactory(ctx context.Context, secret string) (genstudio.Provider, error) {
	return &fakeProvider{secret: secret}, nil
}

func secretOf(p genstudio.Provider) string {
	return p.(*fakeProvider).secret
}

// sleepRecorder captures backoff delays without waiting.
type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func newPool(t *testing.T, fallback string, creds ...credential.Credential) *credential.Pool {
	t.Helper()
	adapter := store.NewMemoryAdapter()
	raw, err := json.Marshal(creds)
	require.NoError(t, err)
	require.NoError(t, adapter.Set(context.Background(), store.KeyCredentials, raw))
	return credential.NewPool(credential.NewStore(adapter, nil), fallback)
}

func errorCount(t *testing.T, pool *credential.Pool, secret string) int {
	t.Helper()
	creds, err := pool.List(context.Background())
	require.NoError(t, err)
	for _, c := range creds {
		if c.Secret == secret {
			return c.ErrorCount
		}
	}
	t.Fatalf("credential %q not found", secret)
	return 0
}

func twoKeys() []credential.Credential {
	return []credential.Credential{
		{Secret: "key-one-0001", Valid: true, Active: true},
		{Secret: "key-two-0002", Valid: true, Active: true},
	}
}

func TestRun_SuccessFirstAttempt(t *testing.T) {
	rec := &sleepRecorder{}
	exec := New(newPool(t, "", twoKeys()...), fakeFactory, WithSleep(rec.sleep))

	calls := 0
	got, err := Run(context.Background(), exec, "generating images", func(ctx context.Context, p genstudio.Provider) (string, error) {
		calls++
		return "ok:" + secretOf(p), nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok:key-one-0001", got)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays)
}

func TestRun_QuotaExhaustsAttempts(t *testing.T) {
	rec := &sleepRecorder{}
	pool := newPool(t, "", twoKeys()...)
	exec := New(pool, fakeFactory, WithSleep(rec.sleep))

	calls := 0
	_, err := Run(context.Background(), exec, "generating images", func(ctx context.Context, p genstudio.Provider) (int, error) {
		calls++
		return 0, genai.APIError{Code: 429, Message: "Resource has been exhausted", Status: "RESOURCE_EXHAUSTED"}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, genstudio.ErrQuota)

	var ge *genstudio.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "generating images", ge.Op)
	assert.Equal(t, 429, ge.Code)
	assert.Contains(t, ge.UserMessage(), "quota")

	// Two waits for three attempts: base, then base*2.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.delays)

	// Failures are charged to the keys that were used: one, two, one.
	assert.Equal(t, 2, errorCount(t, pool, "key-one-0001"))
	assert.Equal(t, 1, errorCount(t, pool, "key-two-0002"))
}

func TestRun_MaxAttemptsBound(t *testing.T) {
	for _, maxAttempts := range []int{1, 2, 5} {
		rec := &sleepRecorder{}
		exec := New(newPool(t, "env-key"), fakeFactory, WithSleep(rec.sleep), WithMaxAttempts(maxAttempts))

		calls := 0
		_, err := Run(context.Background(), exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) {
			calls++
			return 0, errors.New("You exceeded your current quota")
		})

		var ge *genstudio.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, maxAttempts, calls)
		assert.Len(t, rec.delays, maxAttempts-1)
	}
}

func TestRun_SafetyIsTerminal(t *testing.T) {
	rec := &sleepRecorder{}
	pool := newPool(t, "", twoKeys()...)
	exec := New(pool, fakeFactory, WithSleep(rec.sleep), WithMaxAttempts(5))

	calls := 0
	_, err := Run(context.Background(), exec, "editing image", func(ctx context.Context, p genstudio.Provider) (int, error) {
		calls++
		return 0, errors.New("blocked by safety filters")
	})

	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays)
	assert.ErrorIs(t, err, genstudio.ErrSafety)
	assert.Zero(t, errorCount(t, pool, "key-one-0001"))
}

func TestRun_KindedErrorsPassThrough(t *testing.T) {
	exec := New(newPool(t, "env-key"), fakeFactory, WithSleep((&sleepRecorder{}).sleep))

	tests := []struct {
		name string
		err  error
		kind genstudio.Kind
	}{
		{"refusal", genstudio.NewRefusalError("I can't do that"), genstudio.KindRefusal},
		{"empty output", genstudio.NewError(genstudio.KindEmptyOutput, "no image", nil), genstudio.KindEmptyOutput},
		{"malformed", genstudio.NewError(genstudio.KindMalformed, "bad json", nil), genstudio.KindMalformed},
		{"safety", genstudio.NewSafetyError("SAFETY"), genstudio.KindSafety},
		{"network", &genstudio.Error{Kind: genstudio.KindNetwork, Msg: "dial tcp"}, genstudio.KindNetwork},
		{"unclassified", errors.New("unexpected EOF"), genstudio.KindUnknown},
		{"network heuristic", errors.New("dial tcp 1.2.3.4:443: connection refused"), genstudio.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := Run(context.Background(), exec, "testing", func(ctx context.Context, p genstudio.Provider) (int, error) {
				calls++
				return 0, tt.err
			})
			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.kind, genstudio.KindOf(err))
		})
	}
}

func TestRun_RotatesToHealthierKey(t *testing.T) {
	rec := &sleepRecorder{}
	pool := newPool(t, "", twoKeys()...)
	exec := New(pool, fakeFactory, WithSleep(rec.sleep))

	var used []string
	got, err := Run(context.Background(), exec, "generating images", func(ctx context.Context, p genstudio.Provider) (string, error) {
		used = append(used, secretOf(p))
		if secretOf(p) == "key-one-0001" {
			return "", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}
		}
		return "image", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "image", got)
	assert.Equal(t, []string{"key-one-0001", "key-two-0002"}, used)
	assert.Equal(t, []time.Duration{time.Second}, rec.delays)
	assert.Equal(t, 1, errorCount(t, pool, "key-one-0001"))
}

func TestRun_NoCredential(t *testing.T) {
	exec := New(newPool(t, ""), fakeFactory)

	calls := 0
	_, err := Run(context.Background(), exec, "generating images", func(ctx context.Context, p genstudio.Provider) (int, error) {
		calls++
		return 0, nil
	})

	assert.Zero(t, calls)
	assert.ErrorIs(t, err, genstudio.ErrNoCredential)
	assert.Contains(t, genstudio.UserMessage(err), "No API key")
}

func TestRun_FallbackCredential(t *testing.T) {
	exec := New(newPool(t, "env-key"), fakeFactory)

	got, err := Run(context.Background(), exec, "x", func(ctx context.Context, p genstudio.Provider) (string, error) {
		return secretOf(p), nil
	})

	require.NoError(t, err)
	assert.Equal(t, "env-key", got)
}

func TestRun_FactoryErrorIsTerminal(t *testing.T) {
	factoryCalls := 0
	factory := func(ctx context.Context, secret string) (genstudio.Provider, error) {
		factoryCalls++
		return nil, errors.New("invalid client options")
	}
	exec := New(newPool(t, "env-key"), factory)

	calls := 0
	_, err := Run(context.Background(), exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) {
		calls++
		return 0, nil
	})

	assert.Error(t, err)
	assert.Equal(t, 1, factoryCalls)
	assert.Zero(t, calls)
}

func TestRun_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sleep := func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}
	exec := New(newPool(t, "env-key"), fakeFactory, WithSleep(sleep))

	calls := 0
	_, err := Run(ctx, exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) {
		calls++
		return 0, genai.APIError{Code: 429}
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, genstudio.KindCanceled, genstudio.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RealSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	exec := New(newPool(t, "env-key"), fakeFactory, WithConfig(retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Hour,
		Multiplier:   2,
	}))

	start := time.Now()
	_, err := Run(ctx, exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) {
		return 0, genai.APIError{Code: 429}
	})

	assert.Less(t, time.Since(start), time.Minute)
	assert.Equal(t, genstudio.KindCanceled, genstudio.KindOf(err))
}

func TestRun_ResetErrorsOnSuccess(t *testing.T) {
	pool := newPool(t, "", credential.Credential{Secret: "key-one-0001", Valid: true, Active: true, ErrorCount: 4})

	exec := New(pool, fakeFactory)
	_, err := Run(context.Background(), exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 4, errorCount(t, pool, "key-one-0001"))

	exec = New(pool, fakeFactory, WithResetErrorsOnSuccess())
	_, err = Run(context.Background(), exec, "x", func(ctx context.Context, p genstudio.Provider) (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.Zero(t, errorCount(t, pool, "key-one-0001"))
}

func TestRun_Events(t *testing.T) {
	events := make(chan retry.Event, 20)
	exec := New(newPool(t, "", twoKeys()...), fakeFactory,
		WithSleep((&sleepRecorder{}).sleep),
		WithMaxAttempts(2),
		WithEvents(events),
	)

	_, err := Run(context.Background(), exec, "generating images", func(ctx context.Context, p genstudio.Provider) (int, error) {
		return 0, genai.APIError{Code: 429}
	})
	require.Error(t, err)
	close(events)

	var types []retry.EventType
	requestIDs := map[string]bool{}
	for e := range events {
		types = append(types, e.Type)
		requestIDs[e.RequestID] = true
		assert.Equal(t, "generating images", e.Action)
	}

	assert.Equal(t, []retry.EventType{
		retry.EventAttemptStart,
		retry.EventAttemptFailed,
		retry.EventRetrying,
		retry.EventAttemptStart,
		retry.EventAttemptFailed,
		retry.EventExhausted,
	}, types)
	assert.Len(t, requestIDs, 1)
}

func TestTerminal(t *testing.T) {
	assert.Nil(t, Terminal("x", nil))

	err := Terminal("editing image", genstudio.ErrNoCredential)
	assert.Equal(t, "editing image", err.Op)
	assert.ErrorIs(t, err, genstudio.ErrNoCredential)
	// The sentinel itself is not modified
	assert.Empty(t, genstudio.ErrNoCredential.Op)

	err = Terminal("x", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."})
	assert.Equal(t, genstudio.KindAuth, err.Kind)
	assert.Equal(t, 400, err.Code)

	err = Terminal("x", errors.New("Request blocked: PROHIBITED_CONTENT"))
	assert.Equal(t, genstudio.KindSafety, err.Kind)

	err = Terminal("x", context.DeadlineExceeded)
	assert.Equal(t, genstudio.KindCanceled, err.Kind)
}
