package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	StatusSubmitted ProjectStatus = "SUBMITTED"
	StatusApproved  ProjectStatus = "APPROVED"
	StatusRejected  ProjectStatus = "REJECTED"
	StatusActive    ProjectStatus = "ACTIVE"
	StatusFinished  ProjectStatus = "FINISHED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusApproved, StatusRejected, StatusActive, StatusFinished:
		return true
	}
	return false
}

type Audience string

const (
	AudienceStudents  Audience = "STUDENTS"
	AudienceTeachers  Audience = "TEACHERS"
	AudienceCommunity Audience = "COMMUNITY"
	AudienceAll       Audience = "ALL"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceStudents, AudienceTeachers, AudienceCommunity, AudienceAll:
		return true
	}
	return false
}

// Project is the central entity: an extension project proposed by a teacher,
// tied to a course, reviewed through the status lifecycle, and optionally
// carrying an image and a proposal PDF stored in the object store.
type Project struct {
	ID                  uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name                string        `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Description         string        `json:"description" db:"description" gorm:"type:text;not null"`
	ExpectedResults     string        `json:"expected_results" db:"expected_results" gorm:"column:expected_results;type:text;not null"`
	StartDate           time.Time     `json:"start_date" db:"start_date" gorm:"not null"`
	Duration            int           `json:"duration" db:"duration" gorm:"not null"`
	NumberVacancies     int           `json:"numberVacancies" db:"number_vacancies" gorm:"not null"`
	Audience            Audience      `json:"audience" db:"audience" gorm:"type:text;not null"`
	Status              ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:SUBMITTED"`
	Subtitle            *string       `json:"subtitle,omitempty" db:"subtitle" gorm:"type:text"`
	Overview            *string       `json:"overview,omitempty" db:"overview" gorm:"type:text"`
	RegistrationFormURL *string       `json:"registration_form_url,omitempty" db:"registration_form_url" gorm:"type:text"`
	ProposalDocumentURL *string       `json:"proposal_document_url,omitempty" db:"proposal_document_url" gorm:"type:text"`
	ImgURL              *string       `json:"img_url,omitempty" db:"img_url" gorm:"type:text"`
	CourseID            uuid.UUID     `json:"courseId" db:"course_id" gorm:"type:uuid;not null;index"`
	CreatorID           uuid.UUID     `json:"creatorId" db:"creator_id" gorm:"type:uuid;not null;index"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`

	Course           *Course           `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Creator          *User             `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`
	Keywords         []Keyword         `json:"keywords,omitempty" gorm:"many2many:project_keywords"`
	ImpactIndicators []ImpactIndicator `json:"impactIndicators,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Editable reports whether mutations are allowed in the current state.
// Only approved and active projects accept edits.
func (p *Project) Editable() bool {
	return p.Status == StatusApproved || p.Status == StatusActive
}
