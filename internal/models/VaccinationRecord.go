package models

import "gorm.io/gorm"

// VaccinationRecord links a baby to an administered vaccine dose. Exactly one
// of HospitalID / WorkerID is populated, depending on which branch of the
// insertion policy succeeded. Records are immutable once created.
type VaccinationRecord struct {
	gorm.Model
	BabyID           uint   `json:"baby_id" gorm:"index"`
	VaccineID        uint   `json:"vaccine_id"`
	DoseNumber       int    `json:"dose_number"`
	DateAdministered string `json:"date_administered" gorm:"type:date"`
	HospitalID       *uint  `json:"hospital_id,omitempty"`
	WorkerID         *uint  `json:"worker_id,omitempty"`
	AdministeredBy   uint   `json:"administered_by"`
	CertificateURL   string `json:"certificate_url,omitempty"`

	Baby     Baby      `gorm:"foreignKey:BabyID" json:"baby,omitempty"`
	Vaccine  Vaccine   `gorm:"foreignKey:VaccineID" json:"vaccine,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Worker   *Worker   `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
