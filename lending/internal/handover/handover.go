// Package handover validates and normalizes method-specific negotiation
// payloads. It holds no state; the lifecycle engine calls it before committing
// an approve or a return initiation.
package handover

import (
	"strings"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

type Coordinator struct{}

func New() *Coordinator {
	return &Coordinator{}
}

// ValidateHandover checks the details payload against the handover method.
// Tracking is never accepted here: for shipments it is added post hoc via
// addTracking once the shipment exists.
func (c *Coordinator) ValidateHandover(method model.HandoverMethod, d model.Details) (model.Details, error) {
	d = normalize(d)
	switch method {
	case model.HandoverShip, model.HandoverPickup:
		if d.Address == "" {
			return model.Details{}, errs.NewValidationError("address")
		}
	case model.HandoverMeetup:
		if d.Address == "" {
			return model.Details{}, errs.NewValidationError("address")
		}
		if d.Datetime == nil {
			return model.Details{}, errs.NewValidationError("datetime")
		}
	default:
		return model.Details{}, errs.NewValidationError("handoverMethod")
	}
	if d.Tracking != "" {
		return model.Details{}, errs.NewValidationError("tracking")
	}
	return d, nil
}

// ValidateReturn checks the details payload against the return method.
// Unlike handover, a shipped return accepts tracking directly.
func (c *Coordinator) ValidateReturn(method model.ReturnMethod, d model.Details) (model.Details, error) {
	d = normalize(d)
	switch method {
	case model.ReturnShip:
		if d.Address == "" {
			return model.Details{}, errs.NewValidationError("address")
		}
	case model.ReturnMeetup:
		if d.Address == "" {
			return model.Details{}, errs.NewValidationError("address")
		}
		if d.Datetime == nil {
			return model.Details{}, errs.NewValidationError("datetime")
		}
	case model.ReturnDropoff:
		if d.Address == "" {
			return model.Details{}, errs.NewValidationError("address")
		}
	default:
		return model.Details{}, errs.NewValidationError("returnMethod")
	}
	if method != model.ReturnShip && d.Tracking != "" {
		return model.Details{}, errs.NewValidationError("tracking")
	}
	return d, nil
}

func normalize(d model.Details) model.Details {
	d.Address = strings.TrimSpace(d.Address)
	d.Instructions = strings.TrimSpace(d.Instructions)
	d.Tracking = strings.TrimSpace(d.Tracking)
	return d
}
