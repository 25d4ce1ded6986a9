package models

// Like records that a user liked a message. The composite primary key
// makes repeat likes by the same user collapse into a single edge.
type Like struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false;column:user_id"`
	MessageID uint `gorm:"primaryKey;autoIncrement:false;column:message_id"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
