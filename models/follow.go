package models

// Follow is a directed edge in the social graph: UserFollowingID follows
// UserBeingFollowedID. The composite primary key keeps the edge unique.
type Follow struct {
	UserBeingFollowedID uint `gorm:"primaryKey;autoIncrement:false;column:user_being_followed_id"`
	UserFollowingID     uint `gorm:"primaryKey;autoIncrement:false;column:user_following_id"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
