package seeders

import "maintenance-system/internal/entities"

var teamsData = []struct {
	Name           string
	Specialization entities.TeamSpecialization
	Description    string
}{
	{Name: "Mechanics", Specialization: entities.SpecializationMechanical, Description: "Handles all mechanical equipment repairs"},
	{Name: "IT Support", Specialization: entities.SpecializationIT, Description: "Manages IT equipment and systems"},
	{Name: "Electricians", Specialization: entities.SpecializationElectrical, Description: "Handles electrical repairs and installations"},
}

var techniciansData = []struct {
	Name           string
	Email          string
	Phone          string
	TeamName       string
	Specialization []string
}{
	{Name: "Tom Wilson", Email: "tom.wilson@company.com", Phone: "555-0101", TeamName: "Mechanics", Specialization: []string{"CNC Machines", "Heavy Machinery"}},
	{Name: "Sarah Connor", Email: "sarah.connor@company.com", Phone: "555-0102", TeamName: "Mechanics", Specialization: []string{"Forklifts", "Vehicles"}},
	{Name: "Alex Chen", Email: "alex.chen@company.com", Phone: "555-0103", TeamName: "IT Support", Specialization: []string{"Computers", "Networking"}},
}

var equipmentsData = []struct {
	Name           string
	SerialNumber   string
	Department     entities.Department
	AssignedTo     string
	PurchaseDate   string
	WarrantyExpiry string
	Location       string
	Category       entities.EquipmentCategory
	TeamName       string
	TechnicianName string
}{
	{
		Name: "CNC Machine 001", SerialNumber: "CNC-2023-001", Department: entities.DepartmentProduction,
		AssignedTo: "John Doe", PurchaseDate: "2023-01-15", WarrantyExpiry: "2025-01-15",
		Location: "Factory Floor A", Category: entities.CategoryMachinery, TeamName: "Mechanics", TechnicianName: "Tom Wilson",
	},
	{
		Name: "Laptop Dell XPS", SerialNumber: "LPT-2023-045", Department: entities.DepartmentIT,
		AssignedTo: "Jane Smith", PurchaseDate: "2023-06-20", WarrantyExpiry: "2024-06-20",
		Location: "Office 3rd Floor", Category: entities.CategoryElectronics, TeamName: "IT Support", TechnicianName: "Alex Chen",
	},
	{
		Name: "Forklift Toyota", SerialNumber: "FRK-2022-012", Department: entities.DepartmentWarehouse,
		AssignedTo: "Mike Johnson", PurchaseDate: "2022-03-10", WarrantyExpiry: "2025-03-10",
		Location: "Warehouse B", Category: entities.CategoryVehicles, TeamName: "Mechanics", TechnicianName: "Sarah Connor",
	},
}

var requestsData = []struct {
	Subject        string
	Description    string
	SerialNumber   string
	Type           entities.RequestType
	Priority       entities.Priority
	Stage          entities.Stage
	ScheduledDate  string
	CompletedDate  string
	TechnicianName string
	Duration       float64
}{
	{
		Subject: "Oil Leak Detected", Description: "Machine is leaking oil from the hydraulic system",
		SerialNumber: "CNC-2023-001", Type: entities.RequestCorrective, Priority: entities.PriorityHigh,
		Stage: entities.StageNew, ScheduledDate: "2024-12-28",
	},
	{
		Subject: "Routine Inspection", Description: "Monthly preventive maintenance check",
		SerialNumber: "FRK-2022-012", Type: entities.RequestPreventive, Priority: entities.PriorityMedium,
		Stage: entities.StageInProgress, ScheduledDate: "2024-12-29", TechnicianName: "Sarah Connor", Duration: 2,
	},
	{
		Subject: "Screen Replacement", Description: "Laptop screen is cracked and needs replacement",
		SerialNumber: "LPT-2023-045", Type: entities.RequestCorrective, Priority: entities.PriorityLow,
		Stage: entities.StageRepaired, ScheduledDate: "2024-12-26", CompletedDate: "2024-12-27",
		TechnicianName: "Alex Chen", Duration: 3,
	},
}
