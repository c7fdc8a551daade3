package notifications

import (
	"context"

	"dentlab/internal/core/domain/model/kernel"
)

// StaticDirectory resolves lab-side alert recipients from a fixed list,
// typically loaded from configuration at startup.
type StaticDirectory struct {
	labStaff []kernel.UUID
}

// NewStaticDirectory creates a directory over the given lab staff identifiers.
func NewStaticDirectory(rawIDs []string) (*StaticDirectory, error) {
	labStaff := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		labStaff = append(labStaff, id)
	}

	return &StaticDirectory{labStaff: labStaff}, nil
}

// LabRecipients returns the lab staff who receive clinic-initiated alerts.
func (d *StaticDirectory) LabRecipients(_ context.Context) ([]kernel.UUID, error) {
	recipients := make([]kernel.UUID, len(d.labStaff))
	copy(recipients, d.labStaff)
	return recipients, nil
}
