package dto

import "maintenance-system/internal/entities"

type DashboardDTO struct {
	Total      uint64 `json:"total"`
	New        uint64 `json:"new"`
	InProgress uint64 `json:"inProgress"`
	Completed  uint64 `json:"completed"`
	Overdue    uint64 `json:"overdue"`
}

type TeamReportItemDTO struct {
	Team  ShortTeamDTO `json:"team"`
	Count uint64       `json:"count"`
}

type CategoryReportItemDTO struct {
	Category entities.EquipmentCategory `json:"category"`
	Count    uint64                     `json:"count"`
}

type StageReportItemDTO struct {
	Stage entities.Stage `json:"stage"`
	Count uint64         `json:"count"`
}

type CompletionTimeDTO struct {
	AverageDuration float64 `json:"averageDuration"`
	TotalCompleted  uint64  `json:"totalCompleted"`
}
