package memory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EpisodicMemory struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       string         `gorm:"type:varchar(64);index"`
	Question     string         `gorm:"type:text;not null"`
	Answer       string         `gorm:"type:text"`
	KeyPoints    datatypes.JSON `gorm:"type:jsonb"`
	Company      string         `gorm:"type:varchar(128)"`
	Difficulty   string         `gorm:"type:varchar(32)"`
	QualityScore int            `gorm:"default:0;index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (EpisodicMemory) TableName() string {
	return "episodic_memories"
}

type ForumDiscussion struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         string         `gorm:"type:varchar(64);index;not null"`
	UserId            string         `gorm:"type:varchar(64);index"`
	Question          string         `gorm:"type:text"`
	UserAnswer        string         `gorm:"type:text"`
	RagComment        datatypes.JSON `gorm:"type:jsonb"`
	WebComment        datatypes.JSON `gorm:"type:jsonb"`
	FinalEvaluation   datatypes.JSON `gorm:"type:jsonb"`
	DiscussionHistory datatypes.JSON `gorm:"type:jsonb"`
	TotalRounds       int            `gorm:"default:1"`
	Metadata          datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
}

func (ForumDiscussion) TableName() string {
	return "forum_discussions"
}
