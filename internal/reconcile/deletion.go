package reconcile

import (
	"context"
	"fmt"

	"lumen/internal/models"
)

// DeletionReport is the outcome of a safe option deletion: which variants
// went, which were protected by sales history, and whether the option
// definition itself was removed.
type DeletionReport struct {
	OptionID      string   `json:"option_id"`
	Deleted       []string `json:"deleted"`
	Protected     []string `json:"protected"`
	OptionDeleted bool     `json:"option_deleted"`
	Restored      bool     `json:"restored"`
}

// SafeDeleteOption removes an option and the variants selecting it, except
// variants referenced by order line items, which are reported as protected
// and left alone. The option definition is deleted regardless of protected
// survivors: the caller invoking this has already decided the option goes,
// and the report lists what still references it.
//
// If deleting the option fails after variants were removed, the deleted
// variants are restored from snapshots taken beforehand.
func (r *Runner) SafeDeleteOption(ctx context.Context, optionID string) (*DeletionReport, error) {
	if optionID == "" {
		return nil, &ValidationError{Msg: "option id is required"}
	}

	if _, err := r.store.Option(ctx, optionID); err != nil {
		return nil, err
	}

	variants, err := r.store.VariantsByOption(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants for option %s: %w", optionID, err)
	}

	report := &DeletionReport{OptionID: optionID}
	var snapshots []models.ProductVariant
	for _, v := range variants {
		count, err := r.store.LineItemCount(ctx, v.ID)
		if err != nil {
			return report, fmt.Errorf("failed to check sales for variant %s: %w", v.ID, err)
		}
		if count > 0 {
			report.Protected = append(report.Protected, v.ID)
			continue
		}
		snapshots = append(snapshots, v)
		report.Deleted = append(report.Deleted, v.ID)
	}

	if len(report.Protected) > 0 {
		r.logger.Warn("option %s: %d variants protected by sales history: %v",
			optionID, len(report.Protected), report.Protected)
	}

	if len(report.Deleted) > 0 {
		if err := r.store.DeleteVariants(ctx, report.Deleted); err != nil {
			report.Deleted = nil
			return report, fmt.Errorf("failed to delete variants for option %s: %w", optionID, err)
		}
	}

	if err := r.store.DeleteOption(ctx, optionID); err != nil {
		if len(snapshots) > 0 {
			if restoreErr := r.store.RestoreVariants(ctx, snapshots); restoreErr != nil {
				r.logger.Error("failed to restore %d variants after option delete failure: %v",
					len(snapshots), restoreErr)
			} else {
				report.Restored = true
				report.Deleted = nil
			}
		}
		return report, fmt.Errorf("failed to delete option %s: %w", optionID, err)
	}
	report.OptionDeleted = true

	r.logger.Info("option %s deleted: variants deleted=%d protected=%d",
		optionID, len(report.Deleted), len(report.Protected))
	return report, nil
}
