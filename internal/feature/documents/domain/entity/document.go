// Package entity はdocumentsフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Document は要約済みドキュメントを表します。
// アップロードされた原本は保持せず、抽出テキストから生成した要約と
// ダウンロード用のPDFレポートのみを永続化します。
type Document struct {
	// ID is the unique identifier for the document (UUID string).
	ID string `gorm:"primaryKey;size:36"`

	// OwnerEmail is the email of the user who uploaded the document.
	OwnerEmail string `gorm:"index;size:255;not null"`

	// Filename is the original upload filename.
	Filename string `gorm:"size:255;not null"`

	// Summary is the AI-generated plain-language summary.
	Summary string `gorm:"type:text;not null"`

	// Report is the rendered PDF report served on download.
	Report []byte `gorm:"not null"`

	// CreatedAt is the timestamp when the document was summarized.
	CreatedAt time.Time
}
