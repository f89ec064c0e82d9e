package models

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// TableAction names the floor operations a waiter can request on a table.
type TableAction string

const (
	ActionSeatWalkIn TableAction = "seat_walk_in"
	ActionBook       TableAction = "book"
	ActionFreeUp     TableAction = "free_up"
)

type Table struct {
	ID          uint        `gorm:"primaryKey"`
	TableNumber uint        `gorm:"uniqueIndex;not null"`
	Capacity    uint        `gorm:"not null"`
	Status      TableStatus `gorm:"type:varchar(50);not null;default:'available'"`
	CreatedAt   time.Time   `gorm:"not null"`
	UpdatedAt   time.Time   `gorm:"not null"`
}

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

// NextStatus returns the status a table moves to when action is applied in
// the current status. ok is false when the action's precondition does not
// hold; callers must not write any state in that case.
func NextStatus(current TableStatus, action TableAction) (TableStatus, bool) {
	switch action {
	case ActionSeatWalkIn:
		if current == TableAvailable {
			return TableOccupied, true
		}
	case ActionBook:
		if current == TableAvailable {
			return TableReserved, true
		}
	case ActionFreeUp:
		if current == TableOccupied || current == TableReserved {
			return TableAvailable, true
		}
	}
	return current, false
}
