package models

type Group struct {
	BaseModel
	Name         string        `json:"name" gorm:"type:varchar(150);not null"`
	PasswordHash string        `json:"-" gorm:"type:text;not null"`
	Members      []GroupMember `json:"-" gorm:"foreignKey:GroupID"`
	Usernames    []string      `json:"usernames" gorm:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// HasMember reports whether username is in the membership list.
func (g *Group) HasMember(username string) bool {
	for _, member := range g.Usernames {
		if member == username {
			return true
		}
	}
	return false
}

// RemoveMember drops username from the membership list and reports whether it
// was present.
func (g *Group) RemoveMember(username string) bool {
	for i, member := range g.Usernames {
		if member == username {
			g.Usernames = append(g.Usernames[:i:i], g.Usernames[i+1:]...)
			return true
		}
	}
	return false
}

// GroupMember is one row of a group's membership list.
type GroupMember struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	GroupID  int64  `json:"groupId" gorm:"not null;index;uniqueIndex:idx_group_member"`
	Username string `json:"username" gorm:"type:varchar(100);not null;index;uniqueIndex:idx_group_member"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

type LeaveOutcome string

const (
	LeaveOutcomeLeft    LeaveOutcome = "left"
	LeaveOutcomeDeleted LeaveOutcome = "deleted"
)

// Message renders the outcome for human consumers.
func (o LeaveOutcome) Message() string {
	switch o {
	case LeaveOutcomeDeleted:
		return "Group deleted as it has no members"
	case LeaveOutcomeLeft:
		return "Successfully left the group"
	default:
		return string(o)
	}
}
