// Package order contiene la máquina de estados de las órdenes (servicio de dominio puro).
// No toca stock: solo decide si una transición es válida y qué efecto debe aplicar el coordinador.
package order

import (
	"fmt"

	"github.com/jhoicas/warely-stock/internal/domain"
	"github.com/jhoicas/warely-stock/internal/domain/entity"
)

// StockEffect es el efecto sobre el stock que el coordinador debe aplicar por ítem.
type StockEffect int

const (
	EffectNone                StockEffect = iota // solo cambia el estado
	EffectReserve                                // OUTBOUND al crearse
	EffectReleaseReservation                     // OUTBOUND al completarse (despacho)
	EffectRestoreCancelled                       // OUTBOUND cancelada antes del despacho
	EffectReceiveInbound                         // INBOUND al completarse (recepción)
)

func (e StockEffect) String() string {
	switch e {
	case EffectReserve:
		return "reserve"
	case EffectReleaseReservation:
		return "release_reservation"
	case EffectRestoreCancelled:
		return "restore_cancelled"
	case EffectReceiveInbound:
		return "receive_inbound"
	}
	return "none"
}

// ValidType informa si t es una dirección de orden conocida.
func ValidType(t string) bool {
	return t == entity.OrderTypeInbound || t == entity.OrderTypeOutbound
}

// ValidStatus informa si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusProcessing,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado ya no admite transiciones.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusCompleted || status == entity.OrderStatusCancelled
}

// CreationEffect devuelve el efecto de crear una orden (entrada al estado PENDING).
func CreationEffect(orderType string) (StockEffect, error) {
	switch orderType {
	case entity.OrderTypeOutbound:
		return EffectReserve, nil
	case entity.OrderTypeInbound:
		return EffectNone, nil
	}
	return EffectNone, fmt.Errorf("%w: tipo de orden %q", domain.ErrInvalidInput, orderType)
}

// Transition valida from → to para una orden del tipo dado y devuelve el efecto a aplicar.
//
//	PENDING → PROCESSING            sin efecto
//	PENDING|PROCESSING → COMPLETED  OUTBOUND libera reserva, INBOUND recibe
//	PENDING|PROCESSING → CANCELLED  OUTBOUND restaura stock, INBOUND sin efecto
//
// Cualquier otra combinación (incluido repetir el mismo estado) es ErrInvalidTransition.
func Transition(orderType, from, to string) (StockEffect, error) {
	if !ValidType(orderType) {
		return EffectNone, fmt.Errorf("%w: tipo de orden %q", domain.ErrInvalidInput, orderType)
	}
	if !ValidStatus(to) {
		return EffectNone, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, to)
	}
	if IsTerminal(from) || from == to {
		return EffectNone, invalid(from, to)
	}

	switch to {
	case entity.OrderStatusProcessing:
		if from != entity.OrderStatusPending {
			return EffectNone, invalid(from, to)
		}
		return EffectNone, nil
	case entity.OrderStatusCompleted:
		if orderType == entity.OrderTypeOutbound {
			return EffectReleaseReservation, nil
		}
		return EffectReceiveInbound, nil
	case entity.OrderStatusCancelled:
		if orderType == entity.OrderTypeOutbound {
			return EffectRestoreCancelled, nil
		}
		return EffectNone, nil
	}
	// PENDING como destino: solo es válido al crear la orden.
	return EffectNone, invalid(from, to)
}

func invalid(from, to string) error {
	return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
}
