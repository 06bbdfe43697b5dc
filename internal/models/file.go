package models

type File struct {
	BaseModel
	FileName    string `json:"fileName" gorm:"type:varchar(255);not null"`
	FileType    string `json:"fileType" gorm:"type:varchar(255);not null"`
	Size        int64  `json:"size" gorm:"not null;default:0"`
	IsFavourite bool   `json:"isFavourite" gorm:"not null;default:false;index"`
	UserID      int64  `json:"userId" gorm:"not null;index"`
	StoragePath string `json:"-" gorm:"type:text;not null"`
}

func (File) TableName() string {
	return "files"
}

// UnknownGroupName labels shared files whose group no longer exists.
const UnknownGroupName = "Unknown Group"

// FileDTO is the read-only projection returned by listing endpoints.
type FileDTO struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	IsFavourite bool   `json:"isFavourite"`
	GroupName   string `json:"groupName,omitempty"`
}

func NewFileDTO(f *File) FileDTO {
	return FileDTO{
		ID:          f.ID,
		FileName:    f.FileName,
		FileType:    f.FileType,
		IsFavourite: f.IsFavourite,
	}
}
