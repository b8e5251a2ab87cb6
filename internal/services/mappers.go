package services

import (
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
)

func teamToDTO(t entities.Team) dto.TeamDTO {
	return dto.TeamDTO{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Specialization: t.Specialization,
		IsActive:       t.IsActive,
		MembersCount:   t.MembersCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func technicianToDTO(t entities.Technician) dto.TechnicianDTO {
	out := dto.TechnicianDTO{
		ID:             t.ID,
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone,
		Specialization: t.Specialization,
		Avatar:         t.Avatar,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if out.Specialization == nil {
		out.Specialization = []string{}
	}
	if t.TeamID != 0 {
		out.Team = &dto.ShortTeamDTO{ID: t.TeamID, Name: t.TeamName.String}
	}
	return out
}

func techniciansToDTO(list []entities.Technician) []dto.TechnicianDTO {
	out := make([]dto.TechnicianDTO, 0, len(list))
	for _, t := range list {
		out = append(out, technicianToDTO(t))
	}
	return out
}

func equipmentToDTO(e entities.Equipment, underWarranty bool) dto.EquipmentDTO {
	out := dto.EquipmentDTO{
		ID:             e.ID,
		Name:           e.Name,
		SerialNumber:   e.SerialNumber,
		Department:     e.Department,
		AssignedTo:     e.AssignedTo,
		Location:       e.Location,
		PurchaseDate:   e.PurchaseDate,
		WarrantyExpiry: e.WarrantyExpiry,
		UnderWarranty:  underWarranty,
		Category:       e.Category,
		Status:         e.Status,
		IsScrapped:     e.IsScrapped,
		ScrapDate:      e.ScrapDate,
		ScrapReason:    e.ScrapReason,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.MaintenanceTeamID != 0 {
		out.Team = &dto.ShortTeamDTO{ID: e.MaintenanceTeamID, Name: e.TeamName.String}
	}
	if e.DefaultTechnicianID.Valid {
		out.DefaultTechnician = &dto.ShortTechnicianDTO{
			ID:   e.DefaultTechnicianID.Uint64,
			Name: e.DefaultTechnicianName.String,
		}
	}
	return out
}

// requestToDTO ожидает, что isOverdue уже вычислен движком.
func requestToDTO(r entities.Request) dto.RequestDTO {
	out := dto.RequestDTO{
		ID:          r.ID,
		Subject:     r.Subject,
		Description: r.Description,
		Equipment: dto.ShortEquipmentDTO{
			ID:           r.EquipmentID,
			Name:         r.EquipmentName.String,
			SerialNumber: r.EquipmentSerial.String,
		},
		Type:          r.Type,
		Priority:      r.Priority,
		Stage:         r.Stage,
		ScheduledDate: r.ScheduledDate,
		CompletedDate: r.CompletedDate,
		Duration:      r.Duration,
		Team:          dto.ShortTeamDTO{ID: r.TeamID, Name: r.TeamName.String},
		Category:      r.Category,
		CreatedBy:     dto.ShortUserDTO{ID: r.CreatedBy, Name: r.CreatedByName.String},
		Notes:         r.Notes,
		IsOverdue:     r.IsOverdue,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.AssignedTechnicianID.Valid {
		out.AssignedTechnician = &dto.ShortTechnicianDTO{
			ID:     r.AssignedTechnicianID.Uint64,
			Name:   r.TechnicianName.String,
			Avatar: r.TechnicianAvatar.String,
		}
	}
	return out
}

func requestsToDTO(list []entities.Request) []dto.RequestDTO {
	out := make([]dto.RequestDTO, 0, len(list))
	for _, r := range list {
		out = append(out, requestToDTO(r))
	}
	return out
}

func userToDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
