package services

import (
	"context"
	"errors"
	"fmt"

	"peerly/internal/models"

	"gorm.io/gorm"
)

// GrantOutcome Hi5 发放结果
type GrantOutcome int

const (
	GrantOK GrantOutcome = iota
	GrantRecognitionNotFound
	GrantUserNotFound
	GrantWrongOrganisation
	GrantQuotaExhausted
)

func (o GrantOutcome) String() string {
	switch o {
	case GrantOK:
		return "granted"
	case GrantRecognitionNotFound:
		return "recognition_not_found"
	case GrantUserNotFound:
		return "user_not_found"
	case GrantWrongOrganisation:
		return "wrong_organisation"
	case GrantQuotaExhausted:
		return "quota_exhausted"
	default:
		return fmt.Sprintf("grant_outcome(%d)", int(o))
	}
}

// GrantResult Outcome 为 GrantOK 时 Balance 是扣减后的余额
type GrantResult struct {
	Outcome GrantOutcome
	Balance int
}

// errGrantRejected 用于回滚事务，不会返回给调用方
var errGrantRejected = errors.New("hi5 grant rejected")

// GrantHi5 在同一个事务中完成：
//  1. 确认 recognition 存在且对组织可见
//  2. 条件扣减 hi5_quota_balance（余额 > 0 才扣，并发请求由行锁串行化）
//  3. 写入 RecognitionHi5
//
// 任一步失败整个事务回滚。业务上的拒绝以 Outcome 返回，err 只表示故障。
func (s *RecognitionStore) GrantHi5(ctx context.Context, orgID uint, hi5 *models.RecognitionHi5) (GrantResult, error) {
	var result GrantResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recognition{}).
			Where("id = ? AND given_for IN (?)", hi5.RecognitionID, orgUsers(tx, orgID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			result.Outcome = GrantRecognitionNotFound
			return errGrantRejected
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND org_id = ? AND hi5_quota_balance > 0", hi5.GivenBy, orgID).
			UpdateColumn("hi5_quota_balance", gorm.Expr("hi5_quota_balance - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome, err := classifyRejectedGrant(tx, hi5.GivenBy, orgID)
			if err != nil {
				return err
			}
			result.Outcome = outcome
			return errGrantRejected
		}

		if err := tx.Create(hi5).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("id", "hi5_quota_balance").First(&user, hi5.GivenBy).Error; err != nil {
			return err
		}
		result.Outcome = GrantOK
		result.Balance = user.Hi5QuotaBalance
		return nil
	})

	if errors.Is(err, errGrantRejected) {
		return result, nil
	}
	if err != nil {
		return GrantResult{}, fmt.Errorf("grant hi5 on recognition %d: %w", hi5.RecognitionID, err)
	}
	return result, nil
}

// classifyRejectedGrant 条件扣减没有命中任何行时，判断具体原因
func classifyRejectedGrant(tx *gorm.DB, userID, orgID uint) (GrantOutcome, error) {
	var user models.User
	err := tx.Select("id", "org_id", "hi5_quota_balance").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GrantUserNotFound, nil
	}
	if err != nil {
		return 0, err
	}
	if user.OrgID != orgID {
		return GrantWrongOrganisation, nil
	}
	return GrantQuotaExhausted, nil
}
