package postgres

import (
	"context"

	"carewatch/internal/conversation/repository"
	"carewatch/internal/model"
	postgresPkg "carewatch/pkg/postgre"
)

func (r *implRepository) RecentMessages(ctx context.Context, opts repository.RecentMessagesOptions) ([]model.ConversationMessage, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", opts.UserID, opts.Since).
		Order("created_at DESC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var msgs []model.ConversationMessage
	if err := q.Find(&msgs).Error; err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.postgres.RecentMessages.Find: %v", err)
		return nil, err
	}

	return msgs, nil
}

func (r *implRepository) Detail(ctx context.Context, id int64) (model.ConversationMessage, error) {
	var msg model.ConversationMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if postgresPkg.IsNotFound(err) {
			return model.ConversationMessage{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.conversation.repository.postgres.Detail.First: %v", err)
		return model.ConversationMessage{}, err
	}

	return msg, nil
}
