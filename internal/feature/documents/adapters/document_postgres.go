// Package adapters はdocumentsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"legalai_backend/internal/feature/documents/domain/entity"
	"legalai_backend/internal/feature/documents/usecase"
)

// documentPostgres はDocumentRepositoryインターフェースのPostgreSQL実装です。
type documentPostgres struct {
	db *gorm.DB
}

// documentPostgresがDocumentRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.DocumentRepository = (*documentPostgres)(nil)

// NewDocumentPostgres は指定されたgorm.DB接続でdocumentPostgresの新しいインスタンスを生成します。
func NewDocumentPostgres(db *gorm.DB) *documentPostgres {
	return &documentPostgres{db: db}
}

// Create はドキュメントをデータベースに追加します。
func (r *documentPostgres) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// FindByID はIDでドキュメントを取得します。
// 存在しない場合、usecase.ErrDocumentNotFoundを返します。
func (r *documentPostgres) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListByOwner は指定ユーザーのドキュメントを新しい順に取得します。
// 履歴一覧用のためReportカラムは読み込みません。
func (r *documentPostgres) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Document, error) {
	var docs []*entity.Document
	err := r.db.WithContext(ctx).
		Select("id", "owner_email", "filename", "summary", "created_at").
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
