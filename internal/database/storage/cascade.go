package storage

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

// Каскадное удаление выполняется явно и по порядку, внутри транзакции вызывающего.
// Ошибки возвращаются как есть, чтобы withTx откатил транзакцию и отдал их наверх.

// deletePhotoDependents удаляет оценки, комментарии и связи с тегами одного фото.
func deletePhotoDependents(ctx context.Context, tx sqlx.ExtContext, photoID int64) error {
	if _, err := exec(ctx, tx, `DELETE FROM ratings WHERE photo_id = ?`, photoID); err != nil {
		return err
	}
	if _, err := exec(ctx, tx, `DELETE FROM comments WHERE photo_id = ?`, photoID); err != nil {
		return err
	}
	_, err := exec(ctx, tx, `DELETE FROM photo_tags WHERE photo_id = ?`, photoID)
	return err
}

// deletePhotoCascade удаляет фото вместе с зависимыми строками.
func deletePhotoCascade(ctx context.Context, tx sqlx.ExtContext, photoID int64) (domain.RemovedPhotos, error) {
	var removed domain.RemovedPhotos

	var source string
	err := sqlx.GetContext(ctx, tx, &source, tx.Rebind(`SELECT source FROM photos WHERE id = ?`), photoID)
	if err != nil && !isNoRows(err) {
		return removed, err
	}

	if err := deletePhotoDependents(ctx, tx, photoID); err != nil {
		return removed, err
	}
	n, err := exec(ctx, tx, `DELETE FROM photos WHERE id = ?`, photoID)
	if err != nil {
		return removed, err
	}
	if n > 0 {
		removed.PhotoIDs = append(removed.PhotoIDs, photoID)
		removed.Sources = append(removed.Sources, source)
	}
	return removed, nil
}

// deleteUserCascade удаляет пользователя, его фото (с их оценками, комментариями и тегами),
// его собственные оценки и комментарии, userdata и саму запись users.
func deleteUserCascade(ctx context.Context, tx sqlx.ExtContext, userID int64) (domain.RemovedPhotos, error) {
	var removed domain.RemovedPhotos

	var owned []struct {
		ID     int64  `db:"id"`
		Source string `db:"source"`
	}
	if err := sqlx.SelectContext(ctx, tx, &owned, tx.Rebind(`SELECT id, source FROM photos WHERE user_id = ?`), userID); err != nil {
		return removed, err
	}

	if _, err := exec(ctx, tx, `DELETE FROM ratings WHERE user_id = ?`, userID); err != nil {
		return removed, err
	}
	if _, err := exec(ctx, tx, `DELETE FROM comments WHERE user_id = ?`, userID); err != nil {
		return removed, err
	}

	for _, p := range owned {
		if err := deletePhotoDependents(ctx, tx, p.ID); err != nil {
			return removed, err
		}
	}

	if _, err := exec(ctx, tx, `DELETE FROM photos WHERE user_id = ?`, userID); err != nil {
		return removed, err
	}
	if _, err := exec(ctx, tx, `DELETE FROM userdata WHERE user_id = ?`, userID); err != nil {
		return removed, err
	}
	if _, err := exec(ctx, tx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return removed, err
	}

	for _, p := range owned {
		removed.PhotoIDs = append(removed.PhotoIDs, p.ID)
		removed.Sources = append(removed.Sources, p.Source)
	}
	return removed, nil
}
