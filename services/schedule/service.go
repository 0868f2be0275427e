// Package schedule owns the stored view of the class schedule: syncing
// it from the live page, and querying it for suggestions.
package schedule

import (
	"context"
	"log/slog"

	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/schedule")

type Service struct {
	client *foothill.Client
	store  Store
}

func NewService(client *foothill.Client, store Store) Service {
	return Service{client: client, store: store}
}

// Sync scrapes one quarter/department and upserts the result. It returns
// the number of rows persisted; a fetch failure aborts the run with no
// partial writes. Malformed page fragments are dropped without a count,
// callers only see what survived validation.
func (s Service) Sync(ctx context.Context, opts foothill.FetchOptions) (int, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()
	span.SetAttributes(
		attribute.String("quarter", opts.Quarter),
		attribute.String("dept", opts.Dept),
	)

	rows, err := s.client.ScrapeClasses(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return 0, err
	}

	for i := range rows {
		rows[i].Title = textutil.TitleCase(rows[i].Title)
	}

	err = s.store.PutAll(ctx, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist rows")
		return 0, err
	}

	slog.InfoContext(ctx, "synced schedule", "quarter", opts.Quarter, "dept", opts.Dept, "classes", len(rows))
	return len(rows), nil
}
