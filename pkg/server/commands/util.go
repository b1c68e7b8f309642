package commands

import (
	"fmt"

	"github.com/buildgrid/buildgrid/internal/metrics"
	serverconfig "github.com/buildgrid/buildgrid/internal/server/config"
	"github.com/buildgrid/buildgrid/pkg/encoder"
	"github.com/buildgrid/buildgrid/pkg/errors"
	"github.com/buildgrid/buildgrid/pkg/holder"
	"github.com/buildgrid/buildgrid/pkg/pagination"
)

// boundPage caps the requested window at the deployment page size limit.
func boundPage(page pagination.Arguments) pagination.Arguments {
	return page.WithMaxCount(serverconfig.DefaultMaxPageSize)
}

// backendError wraps a hard failure of the candidate-producing backend. Only
// these abort a query; per-edge failures ride along in the page result.
func backendError(op string, err error) error {
	return errors.ErrorWithStack(fmt.Errorf("%s: %w", op, err))
}

// nextCursor returns the opaque token for resuming after the given window,
// or "" when the window already reaches the end of the candidate sequence.
func nextCursor(codec *encoder.CursorCodec, window pagination.Window, total int) string {
	if window.End >= total || window.Len() == 0 {
		return ""
	}
	token, err := codec.EncodeCursor(window.End - 1)
	if err != nil {
		return ""
	}
	return token
}

// countingChecker decorates a DuplicateChecker with the duplicates-skipped
// metric for one collection.
type countingChecker[P any] struct {
	inner      holder.DuplicateChecker[P]
	collection string
}

func withDuplicateMetric[P any](inner holder.DuplicateChecker[P], collection string) holder.DuplicateChecker[P] {
	return &countingChecker[P]{inner: inner, collection: collection}
}

func (c *countingChecker[P]) CheckDuplicateAndRemember(item P) bool {
	dup := c.inner.CheckDuplicateAndRemember(item)
	if dup {
		metrics.DuplicatesSkippedCounter.WithLabelValues(c.collection).Inc()
	}
	return dup
}

func observePage(collection string, window pagination.Window, edgeFailures int) {
	metrics.PagesServedCounter.WithLabelValues(collection).Inc()
	metrics.WindowSizeHistogram.WithLabelValues(collection).Observe(float64(window.Len()))
	if edgeFailures > 0 {
		metrics.EdgeFailuresCounter.WithLabelValues(collection).Add(float64(edgeFailures))
	}
}
