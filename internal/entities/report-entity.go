package entities

type DashboardStats struct {
	Total      uint64
	New        uint64
	InProgress uint64
	Completed  uint64
	Overdue    uint64
}

type TeamCount struct {
	TeamID   uint64
	TeamName string
	Count    uint64
}

type CategoryCount struct {
	Category EquipmentCategory
	Count    uint64
}

type StageCount struct {
	Stage Stage
	Count uint64
}

type CompletionStats struct {
	AverageDuration float64
	TotalCompleted  uint64
}
