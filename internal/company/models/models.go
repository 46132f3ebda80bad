package models

import "time"

// CompanyType distinguishes public institutions from private employers.
type CompanyType string

const (
	CompanyTypePublic  CompanyType = "publica"
	CompanyTypePrivate CompanyType = "privada"
)

// WorkplaceType marks whether the inspected site is the head office or a branch.
type WorkplaceType string

const (
	WorkplaceMatriz   WorkplaceType = "matriz"
	WorkplaceSucursal WorkplaceType = "sucursal"
)

// Workforce breaks the headcount down by the categories labor inspections
// report on. All counts are independent; they do not need to sum to the
// company total.
type Workforce struct {
	Men         int `json:"men"`
	Women       int `json:"women"`
	Pregnant    int `json:"pregnant"`
	Nursing     int `json:"nursing"`
	Foreign     int `json:"foreign"`
	Adolescents int `json:"adolescents"`
	Disabled    int `json:"disabled"`
	Teleworkers int `json:"teleworkers"`
	Minors      int `json:"minors"`
	Seniors     int `json:"seniors"`
}

// Interviewee is a person who took part in the inspection on the company side.
type Interviewee struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// Company is an audited employer, keyed by RUC (the 13-digit business
// registration number).
type Company struct {
	RUC                 string        `json:"ruc"`
	Type                CompanyType   `json:"type"`
	Employer            string        `json:"employer,omitempty"`
	BusinessName        string        `json:"business_name"`
	Phone               string        `json:"phone,omitempty"`
	Email               string        `json:"email,omitempty"`
	EconomicActivity    string        `json:"economic_activity,omitempty"`
	WorkplaceType       WorkplaceType `json:"workplace_type"`
	Address             string        `json:"address,omitempty"`
	TotalWorkers        int           `json:"total_workers"`
	PayrollConsolidated bool          `json:"payroll_consolidated"`
	Workforce           Workforce     `json:"workforce"`
	WorkSchedule        string        `json:"work_schedule,omitempty"`
	Interviewees        []Interviewee `json:"interviewees,omitempty"`
	RegisteredAt        time.Time     `json:"registered_at"`
}
