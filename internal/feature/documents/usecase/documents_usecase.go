// Package usecase はdocumentsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"legalai_backend/internal/feature/documents/domain/entity"
)

const (
	// MaxFileSize はアップロードの最大サイズ（10MB）です。
	MaxFileSize = 10 * 1024 * 1024
	// MaxPDFPages はPDFから抽出する最大ページ数です。
	MaxPDFPages = 10
	// SummaryPrompt は要約生成のシステムプロンプトです。
	SummaryPrompt = "You are a legal assistant.\n" +
		"Summarize the given text in simple, clear non-legal terms.\n" +
		"Make it short, easy to understand, and highlight only the key points."
)

// TextExtractor はアップロードされたファイルからのテキスト抽出を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextExtractor interface {
	// ExtractPDF はPDFバイト列から最大maxPagesページ分のテキストを抽出します。
	ExtractPDF(ctx context.Context, data []byte, maxPages int) (string, error)
	// ExtractImage は画像バイト列からOCRでテキストを抽出します。
	ExtractImage(ctx context.Context, data []byte) (string, error)
}

// Summarizer はテキストの要約生成を抽象化します。
type Summarizer interface {
	// Summarize はプロンプトを含むテキストから要約を生成します。
	Summarize(ctx context.Context, text string) (string, error)
}

// ReportRenderer は要約からダウンロード用PDFレポートの生成を抽象化します。
type ReportRenderer interface {
	// Render は要約テキストをPDFバイト列に変換します。
	Render(summary string) ([]byte, error)
}

// DocumentRepository はドキュメントエンティティの永続化層を抽象化します。
type DocumentRepository interface {
	// Create は新しいドキュメントをストレージに永続化します。
	Create(ctx context.Context, doc *entity.Document) error
	// FindByID はIDでドキュメントを取得します。
	// 存在しない場合、ErrDocumentNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	// ListByOwner は指定ユーザーのドキュメントを新しい順に取得します。
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Document, error)
}

// documentsUsecase はドキュメントの要約パイプラインを実装します。
type documentsUsecase struct {
	extractor  TextExtractor
	summarizer Summarizer
	renderer   ReportRenderer
	docs       DocumentRepository
}

// NewDocumentsUsecase はdocumentsUsecaseの新しいインスタンスを生成します。
func NewDocumentsUsecase(extractor TextExtractor, summarizer Summarizer, renderer ReportRenderer, docs DocumentRepository) *documentsUsecase {
	return &documentsUsecase{
		extractor:  extractor,
		summarizer: summarizer,
		renderer:   renderer,
		docs:       docs,
	}
}

// extract はファイル拡張子に応じてテキスト抽出方法を選択します。
func (u *documentsUsecase) extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return u.extractor.ExtractPDF(ctx, data, MaxPDFPages)
	case "png", "jpg", "jpeg":
		return u.extractor.ExtractImage(ctx, data)
	default:
		return "", ErrUnsupportedFileType
	}
}

// Upload はアップロードされたファイルを要約し、レポートを添えて永続化します。
// 抽出 → 要約 → レポート生成 → 保存の順に処理します。
func (u *documentsUsecase) Upload(ctx context.Context, ownerEmail, filename string, data []byte) (*entity.Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	text, err := u.extract(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoReadableText
	}

	summary, err := u.summarizer.Summarize(ctx, SummaryPrompt+"\n\n"+text)
	if err != nil {
		return nil, fmt.Errorf("summarizer failed: %w", err)
	}

	report, err := u.renderer.Render(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	doc := &entity.Document{
		ID:         uuid.NewString(),
		OwnerEmail: ownerEmail,
		Filename:   filename,
		Summary:    summary,
		Report:     report,
	}
	if err := u.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	return doc, nil
}

// Download はレポートPDFを取得します。他ユーザーのドキュメントは
// 存在の有無を漏らさないためErrDocumentNotFoundとして扱います。
func (u *documentsUsecase) Download(ctx context.Context, ownerEmail, id string) (*entity.Document, error) {
	doc, err := u.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerEmail != ownerEmail {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// List は指定ユーザーの要約履歴を新しい順に返します。
func (u *documentsUsecase) List(ctx context.Context, ownerEmail string) ([]*entity.Document, error) {
	return u.docs.ListByOwner(ctx, ownerEmail)
}
