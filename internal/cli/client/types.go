package client

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Usernames []string  `json:"usernames"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID             int64     `json:"id"`
	GroupID        int64     `json:"groupId"`
	SenderUsername string    `json:"senderUsername"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
}

// File is the full record returned by uploads.
type File struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	Size        int64     `json:"size"`
	IsFavourite bool      `json:"isFavourite"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FileSummary is the projection returned by listing endpoints.
type FileSummary struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	IsFavourite bool   `json:"isFavourite"`
	GroupName   string `json:"groupName,omitempty"`
}

type LeaveResult struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

type Outcome struct {
	Done    bool   `json:"done"`
	Message string `json:"message"`
}

type DownloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}
