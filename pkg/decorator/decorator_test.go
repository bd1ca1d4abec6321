package decorator_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/pitosalas/blogbridge-sub012/pkg/decorator"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
	"github.com/pitosalas/blogbridge-sub012/pkg/metrics/memory"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type (
	LookupThing struct{ ID string }

	RenameThing struct{ Title string }

	lookupHandler struct{ err error }

	renameHandler struct{ err error }
)

func (h lookupHandler) Execute(_ context.Context, q LookupThing) (string, error) {
	if h.err != nil {
		return "", h.err
	}

	return "thing-" + q.ID, nil
}

func (h renameHandler) Handle(_ context.Context, cmd RenameThing) (int, error) {
	if h.err != nil {
		return 0, h.err
	}

	return len(cmd.Title), nil
}

func newTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()

	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func TestApplyQueryDecorators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		err            error
		expectedResult string
		expectedStatus codes.Code
		successCount   int64
		failureCount   int64
	}{
		{
			name:           "success is counted and traced",
			expectedResult: "thing-42",
			expectedStatus: codes.Ok,
			successCount:   1,
		},
		{
			name:           "failure is counted and recorded on span",
			err:            errors.New("boom"),
			expectedStatus: codes.Error,
			failureCount:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			client := memory.NewMetricsClient()
			recorder, provider := newTracer()

			handler := decorator.ApplyQueryDecorators[LookupThing, string](
				lookupHandler{err: tc.err},
				logger.NewBufferedTestLogger(&buf),
				client,
				provider,
			)

			result, err := handler.Execute(context.Background(), LookupThing{ID: "42"})
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Contains(t, buf.String(), "failed to execute query")
			} else {
				require.NoError(t, err)
				require.Contains(t, buf.String(), "query executed successfully")
			}

			require.Equal(t, tc.expectedResult, result)
			require.Equal(t, tc.successCount, client.Total("queries.lookupthing.success"))
			require.Equal(t, tc.failureCount, client.Total("queries.lookupthing.failure"))
			require.Contains(t, buf.String(), `"query":"LookupThing"`)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, "query.LookupThing", spans[0].Name())
			require.Equal(t, tc.expectedStatus, spans[0].Status().Code)
		})
	}
}

func TestApplyCommandDecorators(t *testing.T) {
	t.Parallel()

	client := memory.NewMetricsClient()
	recorder, provider := newTracer()

	handler := decorator.ApplyCommandDecorators[RenameThing, int](
		renameHandler{},
		logger.NewTestLogger(),
		client,
		provider,
	)

	result, err := handler.Handle(context.Background(), RenameThing{Title: "golang"})
	require.NoError(t, err)
	require.Equal(t, 6, result)
	require.Equal(t, int64(1), client.Total("commands.renamething.success"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "command.RenameThing", spans[0].Name())
}

func TestDecoratorsTolerateMissingCollaborators(t *testing.T) {
	t.Parallel()

	handler := decorator.ApplyCommandDecorators[RenameThing, int](
		renameHandler{err: errors.New("rejected")},
		logger.NewTestLogger(),
		nil,
		nil,
	)

	_, err := handler.Handle(context.Background(), RenameThing{})
	require.EqualError(t, err, "rejected")
}
