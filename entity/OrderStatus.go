package entity

// Order status values: pending → preparing → ready → delivered → completed
// และ cancelled ได้จากทุกสถานะที่ยังไม่จบ
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// nextStatuses: transition ที่อนุญาตจากแต่ละสถานะ
var nextStatuses = map[string][]string{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func IsValidStatus(s string) bool {
	_, ok := nextStatuses[s]
	return ok
}

func IsTerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition ตรวจว่า from → to เดินตาม state machine ได้ไหม
func CanTransition(from, to string) bool {
	for _, n := range nextStatuses[from] {
		if n == to {
			return true
		}
	}
	return false
}
