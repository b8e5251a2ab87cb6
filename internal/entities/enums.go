package entities

import "slices"

type TeamSpecialization string

const (
	SpecializationMechanical TeamSpecialization = "Mechanical"
	SpecializationElectrical TeamSpecialization = "Electrical"
	SpecializationIT         TeamSpecialization = "IT"
	SpecializationGeneral    TeamSpecialization = "General"
	SpecializationOther      TeamSpecialization = "Other"
)

var TeamSpecializations = []TeamSpecialization{
	SpecializationMechanical, SpecializationElectrical, SpecializationIT, SpecializationGeneral, SpecializationOther,
}

func (s TeamSpecialization) IsValid() bool { return slices.Contains(TeamSpecializations, s) }

type Department string

const (
	DepartmentProduction  Department = "Production"
	DepartmentIT          Department = "IT"
	DepartmentWarehouse   Department = "Warehouse"
	DepartmentMaintenance Department = "Maintenance"
	DepartmentAdmin       Department = "Admin"
	DepartmentOther       Department = "Other"
)

var Departments = []Department{
	DepartmentProduction, DepartmentIT, DepartmentWarehouse, DepartmentMaintenance, DepartmentAdmin, DepartmentOther,
}

func (d Department) IsValid() bool { return slices.Contains(Departments, d) }

type EquipmentCategory string

const (
	CategoryMachinery   EquipmentCategory = "Machinery"
	CategoryElectronics EquipmentCategory = "Electronics"
	CategoryVehicles    EquipmentCategory = "Vehicles"
	CategoryTools       EquipmentCategory = "Tools"
	CategoryOther       EquipmentCategory = "Other"
)

var EquipmentCategories = []EquipmentCategory{
	CategoryMachinery, CategoryElectronics, CategoryVehicles, CategoryTools, CategoryOther,
}

func (c EquipmentCategory) IsValid() bool { return slices.Contains(EquipmentCategories, c) }

type EquipmentStatus string

const (
	EquipmentActive           EquipmentStatus = "Active"
	EquipmentUnderMaintenance EquipmentStatus = "Under Maintenance"
	EquipmentScrapped         EquipmentStatus = "Scrapped"
	EquipmentInactive         EquipmentStatus = "Inactive"
)

var EquipmentStatuses = []EquipmentStatus{
	EquipmentActive, EquipmentUnderMaintenance, EquipmentScrapped, EquipmentInactive,
}

func (s EquipmentStatus) IsValid() bool { return slices.Contains(EquipmentStatuses, s) }

type RequestType string

const (
	RequestCorrective RequestType = "Corrective"
	RequestPreventive RequestType = "Preventive"
)

var RequestTypes = []RequestType{RequestCorrective, RequestPreventive}

func (t RequestType) IsValid() bool { return slices.Contains(RequestTypes, t) }

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) IsValid() bool { return slices.Contains(Priorities, p) }

type Stage string

const (
	StageNew        Stage = "New"
	StageInProgress Stage = "In Progress"
	StageRepaired   Stage = "Repaired"
	StageScrap      Stage = "Scrap"
)

// Stages в порядке колонок канбан-доски.
var Stages = []Stage{StageNew, StageInProgress, StageRepaired, StageScrap}

func (s Stage) IsValid() bool { return slices.Contains(Stages, s) }

// IsClosed: заявка в финальной стадии и просроченной быть не может.
func (s Stage) IsClosed() bool { return s == StageRepaired || s == StageScrap }

type UserRole string

const (
	RoleEmployee   UserRole = "Employee"
	RoleTechnician UserRole = "Technician"
	RoleManager    UserRole = "Manager"
)

var UserRoles = []UserRole{RoleEmployee, RoleTechnician, RoleManager}

func (r UserRole) IsValid() bool { return slices.Contains(UserRoles, r) }
