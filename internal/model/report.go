package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportType is the fixed report category enumeration
type ReportType string

const (
	ReportTypeBloodTest    ReportType = "blood_test"
	ReportTypeXRay         ReportType = "x-ray"
	ReportTypeMRI          ReportType = "mri"
	ReportTypeCTScan       ReportType = "ct_scan"
	ReportTypeUltrasound   ReportType = "ultrasound"
	ReportTypePrescription ReportType = "prescription"
	ReportTypeOther        ReportType = "other"
)

// ReportTypes lists the valid categories
var ReportTypes = []ReportType{
	ReportTypeBloodTest,
	ReportTypeXRay,
	ReportTypeMRI,
	ReportTypeCTScan,
	ReportTypeUltrasound,
	ReportTypePrescription,
	ReportTypeOther,
}

// Valid reports whether t belongs to the closed category set
func (t ReportType) Valid() bool {
	for _, rt := range ReportTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// FileType is the stored file kind
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
)

// Valid reports whether t is an accepted file kind
func (t FileType) Valid() bool {
	switch t {
	case FileTypePDF, FileTypeJPG, FileTypeJPEG, FileTypePNG:
		return true
	}
	return false
}

// MIMEType maps the file kind to the media type declared to the model
// service. Unrecognized kinds from legacy rows fall back to image/jpeg.
func (t FileType) MIMEType() string {
	switch t {
	case FileTypePDF:
		return "application/pdf"
	case FileTypePNG:
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// FileTypeFromMIME maps an upload content type to a file kind
func FileTypeFromMIME(mime string) (FileType, bool) {
	switch mime {
	case "application/pdf":
		return FileTypePDF, true
	case "image/png":
		return FileTypePNG, true
	case "image/jpeg", "image/jpg":
		return FileTypeJPG, true
	}
	return "", false
}

// Report represents one uploaded medical document. Exactly one storage
// object per report; Analyzed flips true only after an insight is persisted.
type Report struct {
	Base
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	ReportType   ReportType `json:"report_type" db:"report_type"`
	FileURL      string     `json:"file_url" db:"file_url"`
	FilePublicID string     `json:"file_public_id" db:"file_public_id"`
	FileType     FileType   `json:"file_type" db:"file_type"`
	ReportDate   time.Time  `json:"report_date" db:"report_date"`
	HospitalName *string    `json:"hospital_name,omitempty" db:"hospital_name"`
	DoctorName   *string    `json:"doctor_name,omitempty" db:"doctor_name"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	Analyzed     bool       `json:"analyzed" db:"analyzed"`
}

// UploadReportRequest is the multipart metadata for an upload
type UploadReportRequest struct {
	Title        string     `form:"title"`
	ReportType   ReportType `form:"report_type" binding:"omitempty,report_type"`
	ReportDate   *time.Time `form:"report_date" time_format:"2006-01-02"`
	HospitalName *string    `form:"hospital_name"`
	DoctorName   *string    `form:"doctor_name"`
	Notes        *string    `form:"notes"`
}

// UpdateReportRequest carries mutable report metadata
type UpdateReportRequest struct {
	Title        *string     `json:"title"`
	ReportType   *ReportType `json:"report_type" binding:"omitempty,report_type"`
	ReportDate   *time.Time  `json:"report_date"`
	HospitalName *string     `json:"hospital_name"`
	DoctorName   *string     `json:"doctor_name"`
	Notes        *string     `json:"notes"`
}
