package app

import (
	"context"

	"collectorsdream/domain/core"
	"collectorsdream/internal"
	"collectorsdream/internal/errors"
	"collectorsdream/ports"
)

// TransferResult counts what CopyItems did
type TransferResult struct {
	Copied  int
	Skipped int
}

// CopyItems copies every item from src into dst, keeping IDs and
// timestamps. Items whose ID already exists in dst are skipped, so a copy
// that stopped halfway can be rerun.
func CopyItems(ctx context.Context, src, dst ports.ItemRepository, logger *internal.Logger) (TransferResult, error) {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	var result TransferResult

	items, err := src.List(ctx)
	if err != nil {
		return result, errors.Wrap(err, "failed to list source items")
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := dst.Get(ctx, item.ID)
		switch {
		case err == nil:
			logger.Debug("skipping %s, already present", item.ID)
			result.Skipped++
			continue
		case !core.IsNotFoundError(err):
			return result, errors.Wrapf(err, "failed to look up %s in target", item.ID)
		}

		if err := dst.Create(ctx, item); err != nil {
			return result, errors.Wrapf(err, "failed to copy item %s", item.ID)
		}
		result.Copied++
	}

	logger.Info("copied %d items, skipped %d", result.Copied, result.Skipped)
	return result, nil
}
