package usecase

import (
	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

// staffTransitions lists status moves staff may perform directly.
// Complete -> Revision is reserved for the owner's revision request.
var staffTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusInProgress},
	model.OrderStatusInProgress: {model.OrderStatusPending, model.OrderStatusComplete},
	model.OrderStatusRevision:   {model.OrderStatusInProgress, model.OrderStatusComplete},
}

// CheckTransition validates a status change of order o to target.
func CheckTransition(actor model.Actor, o *model.Order, to model.OrderStatus) error {
	from := o.Status
	if from == to {
		return nil
	}

	switch actor {
	case model.ActorStaff, model.ActorSystem:
		if !contains(staffTransitions[from], to) {
			return domainErrors.ErrInvalidTransition
		}
		if to == model.OrderStatusComplete && !o.CanDownload() {
			return domainErrors.ErrNoCompletedFiles
		}
		return nil
	case model.ActorUser:
		if from == model.OrderStatusComplete && to == model.OrderStatusRevision {
			return nil
		}
		return domainErrors.ErrInvalidTransition
	default:
		return domainErrors.ErrInvalidTransition
	}
}

func contains(list []model.OrderStatus, s model.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
