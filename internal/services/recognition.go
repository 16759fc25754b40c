package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peerly/internal/models"
	"peerly/internal/utils"

	"gorm.io/gorm"
)

// RecognitionFilter 列表查询条件，0 表示不过滤
type RecognitionFilter struct {
	CoreValueID uint
	GivenFor    uint
	GivenBy     uint
	Limit       int
	Offset      int
}

// RecognitionStore recognition 及其引用数据（core value / user）的持久化
type RecognitionStore struct {
	db       *gorm.DB
	cache    *utils.Cache
	cacheTTL time.Duration
}

// NewRecognitionStore cache 可以为 nil（不缓存 core value 所属组织）
func NewRecognitionStore(db *gorm.DB, cache *utils.Cache, cacheTTL time.Duration) *RecognitionStore {
	return &RecognitionStore{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// orgUsers 组织内用户 id 子查询
func orgUsers(tx *gorm.DB, orgID uint) *gorm.DB {
	return tx.Model(&models.User{}).Select("id").Where("org_id = ?", orgID)
}

func coreValueCacheKey(id uint) string {
	return fmt.Sprintf("core_value:org:%d", id)
}

// CoreValueOrg 返回 core value 所属组织；core value 在本服务中只读，结果会缓存
func (s *RecognitionStore) CoreValueOrg(ctx context.Context, id uint) (uint, error) {
	key := coreValueCacheKey(id)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key).(uint); ok {
			return cached, nil
		}
	}

	var coreValue models.CoreValue
	err := s.db.WithContext(ctx).Select("id", "org_id").First(&coreValue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load core value %d: %w", id, err)
	}

	if s.cache != nil {
		s.cache.Set(key, coreValue.OrgID, s.cacheTTL)
	}
	return coreValue.OrgID, nil
}

// UserOrg 返回用户所属组织
func (s *RecognitionStore) UserOrg(ctx context.Context, id uint) (uint, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "org_id").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load user %d: %w", id, err)
	}
	return user.OrgID, nil
}

// CreateRecognition 写入一条 recognition，成功后 rec.ID 被回填
func (s *RecognitionStore) CreateRecognition(ctx context.Context, rec *models.Recognition) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create recognition: %w", err)
	}
	return nil
}

// GetRecognition 按 id 读取，接收人不属于 orgID 时视为不存在
func (s *RecognitionStore) GetRecognition(ctx context.Context, id, orgID uint) (*models.Recognition, error) {
	tx := s.db.WithContext(ctx)

	var rec models.Recognition
	err := tx.Where("given_for IN (?)", orgUsers(tx, orgID)).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load recognition %d: %w", id, err)
	}
	return &rec, nil
}

// ListRecognitions 组织内 recognition 列表，所有条件都以参数绑定
func (s *RecognitionStore) ListRecognitions(ctx context.Context, orgID uint, f RecognitionFilter) ([]models.Recognition, error) {
	tx := s.db.WithContext(ctx)

	query := tx.Model(&models.Recognition{}).Where("given_for IN (?)", orgUsers(tx, orgID))
	if f.GivenFor != 0 {
		query = query.Where("given_for = ?", f.GivenFor)
	}
	if f.GivenBy != 0 {
		query = query.Where("given_by = ?", f.GivenBy)
	}
	if f.CoreValueID != 0 {
		query = query.Where("core_value_id = ?", f.CoreValueID)
	}

	limit, offset := utils.LimitAndOffset(f.Limit, f.Offset)

	var recognitions []models.Recognition
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&recognitions).Error; err != nil {
		return nil, fmt.Errorf("list recognitions: %w", err)
	}
	return recognitions, nil
}
