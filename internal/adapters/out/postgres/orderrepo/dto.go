// Package orderrepo implements order persistence on PostgreSQL. The item
// snapshot and the driver exclusion set are stored as jsonb documents inside
// the order row, and the exclusion set is kept as a flat array of id strings
// so the available orders query can filter with the @> containment operator.
package orderrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as text and each fulfillment stage keeps a (kind, at) pair
// discriminating not-reached, estimated and actual timestamps.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerKind     string     `gorm:"index:idx_orders_customer"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index:idx_orders_customer"`
	StoreID          uuid.UUID  `gorm:"type:uuid;index"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`
	ExcludedDrivers  []byte     `gorm:"type:jsonb"`
	Items            []byte     `gorm:"type:jsonb"`
	DeliveryFeeCents int64
	AmountCents      int64
	IsTakeout        bool
	IsPaid           bool
	IsActive         bool   `gorm:"index"`
	Status           string `gorm:"index"`
	PlacedAt         time.Time
	AcceptedKind     int
	AcceptedAt       *time.Time
	PreparedKind     int
	PreparedAt       *time.Time
	ClaimedKind      int
	ClaimedAt        *time.Time
	PickedUpKind     int
	PickedUpAt       *time.Time
	DeliveredKind    int
	DeliveredAt      *time.Time
	ReceivedKind     int
	ReceivedAt       *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// itemRow is the jsonb shape of one ordered item snapshot.
type itemRow struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var assignedDriverID *uuid.UUID
	if id := aggregate.AssignedDriver(); id != nil {
		raw := id.Bytes()
		assignedDriverID = &raw
	}

	excluded := aggregate.ExcludedDrivers()
	excludedIDs := make([]string, 0, len(excluded))
	for _, id := range excluded {
		excludedIDs = append(excludedIDs, id.String())
	}
	rawExcluded, err := json.Marshal(excludedIDs)
	if err != nil {
		return OrderDTO{}, err
	}

	items := aggregate.Items()
	itemRows := make([]itemRow, 0, len(items))
	for _, item := range items {
		itemRows = append(itemRows, itemRow{
			ProductID:  item.ProductID().String(),
			Name:       item.Name(),
			PriceCents: item.Price().Cents(),
			Quantity:   item.Quantity(),
		})
	}
	rawItems, err := json.Marshal(itemRows)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerKind:     aggregate.Customer().Kind().String(),
		CustomerID:       aggregate.Customer().ID().Bytes(),
		StoreID:          aggregate.StoreID().Bytes(),
		AssignedDriverID: assignedDriverID,
		ExcludedDrivers:  rawExcluded,
		Items:            rawItems,
		DeliveryFeeCents: aggregate.DeliveryFee().Cents(),
		AmountCents:      aggregate.Amount().Cents(),
		IsTakeout:        aggregate.IsTakeout(),
		IsPaid:           aggregate.IsPaid(),
		IsActive:         aggregate.IsActive(),
		Status:           aggregate.Status().String(),
		PlacedAt:         aggregate.PlacedAt(),
	}

	dto.AcceptedKind, dto.AcceptedAt = fromStageTime(aggregate.AcceptedAt())
	dto.PreparedKind, dto.PreparedAt = fromStageTime(aggregate.PreparedAt())
	dto.ClaimedKind, dto.ClaimedAt = fromStageTime(aggregate.ClaimedAt())
	dto.PickedUpKind, dto.PickedUpAt = fromStageTime(aggregate.PickedUpAt())
	dto.DeliveredKind, dto.DeliveredAt = fromStageTime(aggregate.DeliveredAt())
	dto.ReceivedKind, dto.ReceivedAt = fromStageTime(aggregate.ReceivedAt())

	return dto, nil
}

func fromStageTime(t order.StageTime) (int, *time.Time) {
	if t.IsNotReached() {
		return int(order.StageTimeNotReached), nil
	}
	at := t.Time()
	return int(t.Kind()), &at
}

func toStageTime(kind int, at *time.Time) (order.StageTime, error) {
	if at == nil {
		return order.RestoreStageTime(order.StageTimeKind(kind), time.Time{})
	}
	return order.RestoreStageTime(order.StageTimeKind(kind), *at)
}

// toDomain converts a database DTO back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := toDomainCustomer(dto)
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var assignedDriverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		driverID, driverErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		assignedDriverID = &driverID
	}

	excludedDrivers, err := toDomainExcluded(dto.ExcludedDrivers)
	if err != nil {
		return nil, err
	}

	items, err := toDomainItems(dto.Items)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromCents(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:               id,
		Customer:         customer,
		StoreID:          storeID,
		AssignedDriverID: assignedDriverID,
		ExcludedDrivers:  excludedDrivers,
		Items:            items,
		DeliveryFee:      deliveryFee,
		Amount:           amount,
		IsTakeout:        dto.IsTakeout,
		IsPaid:           dto.IsPaid,
		IsActive:         dto.IsActive,
		Status:           status,
		PlacedAt:         dto.PlacedAt,
	}

	if params.AcceptedAt, err = toStageTime(dto.AcceptedKind, dto.AcceptedAt); err != nil {
		return nil, err
	}
	if params.PreparedAt, err = toStageTime(dto.PreparedKind, dto.PreparedAt); err != nil {
		return nil, err
	}
	if params.ClaimedAt, err = toStageTime(dto.ClaimedKind, dto.ClaimedAt); err != nil {
		return nil, err
	}
	if params.PickedUpAt, err = toStageTime(dto.PickedUpKind, dto.PickedUpAt); err != nil {
		return nil, err
	}
	if params.DeliveredAt, err = toStageTime(dto.DeliveredKind, dto.DeliveredAt); err != nil {
		return nil, err
	}
	if params.ReceivedAt, err = toStageTime(dto.ReceivedKind, dto.ReceivedAt); err != nil {
		return nil, err
	}

	return order.RestoreOrder(params)
}

func toDomainCustomer(dto OrderDTO) (kernel.Owner, error) {
	kind, err := kernel.OwnerKindFromString(dto.CustomerKind)
	if err != nil {
		return kernel.Owner{}, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return kernel.Owner{}, err
	}

	return kernel.RestoreOwner(kind, customerID)
}

func toDomainExcluded(raw []byte) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}

	excluded := make([]kernel.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		excluded = append(excluded, id)
	}

	return excluded, nil
}

func toDomainItems(raw []byte) ([]order.Item, error) {
	var rows []itemRow
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(rows))
	for _, row := range rows {
		productID, err := kernel.UUIDFromString(row.ProductID)
		if err != nil {
			return nil, err
		}

		price, err := kernel.NewMoneyFromCents(row.PriceCents)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(productID, row.Name, price, row.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
