package models

import (
	"fmt"
	"time"

	"academy/storage"
)

// CourseFile mirrors an attachment stored in the upload directory.
type CourseFile struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	CourseID         uint      `gorm:"not null;index" json:"course_id"`
	Filename         string    `gorm:"size:255;not null;index" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FileType         string    `gorm:"size:10;not null" json:"file_type"`
	MimeType         string    `gorm:"size:100" json:"mime_type"`
	FileSize         int64     `json:"file_size"`
	UploadedAt       time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	Course           *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// CourseFileView adds the display fields pages show next to an attachment.
type CourseFileView struct {
	CourseFile
	SizeDisplay string `json:"size_display"`
	DownloadURL string `json:"download_url"`
}

func FileViews(files []CourseFile) []CourseFileView {
	views := make([]CourseFileView, len(files))
	for i, f := range files {
		views[i] = CourseFileView{
			CourseFile:  f,
			SizeDisplay: storage.FormatFileSize(f.FileSize),
			DownloadURL: fmt.Sprintf("/download/%d", f.ID),
		}
	}
	return views
}
