package postgres

import (
	"context"

	"carewatch/internal/alert/repository"
	"carewatch/internal/model"
	postgresPkg "carewatch/pkg/postgre"
)

func (r *implRepository) ListActiveRules(ctx context.Context, opts repository.ListRulesOptions) ([]model.AlertRule, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if opts.Filter.UserID != 0 {
		q = q.Where("user_id = ?", opts.Filter.UserID)
	}
	if opts.Filter.RiskType != "" {
		q = q.Where("risk_type = ?", opts.Filter.RiskType)
	}

	var rules []model.AlertRule
	if err := q.Order("id ASC").Find(&rules).Error; err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.ListActiveRules.Find: %v", err)
		return nil, err
	}

	return rules, nil
}

func (r *implRepository) DetailRule(ctx context.Context, id int64) (model.AlertRule, error) {
	var rule model.AlertRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if postgresPkg.IsNotFound(err) {
			return model.AlertRule{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.DetailRule.First: %v", err)
		return model.AlertRule{}, err
	}

	return rule, nil
}

func (r *implRepository) CreateRule(ctx context.Context, opts repository.CreateRuleOptions) (model.AlertRule, error) {
	rule := opts.Rule
	if err := r.db.WithContext(ctx).Create(&rule).Error; err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateRule.Create: %v", err)
		return model.AlertRule{}, err
	}

	return rule, nil
}

func (r *implRepository) UpdateRuleActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.AlertRule{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpdateRuleActive.Update: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
