package models

// Recognition 同事之间的认可，创建后不可修改
type Recognition struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CoreValueID uint   `gorm:"not null;index" json:"core_value_id"`
	Text        string `gorm:"type:text;not null" json:"text"`
	GivenFor    uint   `gorm:"not null;index" json:"given_for"` // 接收人
	GivenBy     uint   `gorm:"not null;index" json:"given_by"`  // 作者，取自 token
	GivenAt     int64  `gorm:"not null" json:"given_at"`        // unix 时间戳
}

// RecognitionHi5 对某条认可送出的 Hi5，只追加
type RecognitionHi5 struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	RecognitionID uint    `gorm:"not null;index" json:"recognition_id"`
	GivenBy       uint    `gorm:"not null;index" json:"given_by"`
	GivenAt       int64   `gorm:"not null" json:"given_at"`
	Comment       *string `gorm:"type:text" json:"comment"`
}

func (RecognitionHi5) TableName() string {
	return "recognition_hi5"
}
