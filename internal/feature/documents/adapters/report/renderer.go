// Package report は要約PDFレポートの生成を提供します。
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"legalai_backend/internal/feature/documents/usecase"
)

// PDFRenderer は要約テキストをA4のPDFレポートに変換します。
type PDFRenderer struct{}

// PDFRendererがReportRendererを実装していることをコンパイル時に検証します。
var _ usecase.ReportRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer はPDFRendererの新しいインスタンスを生成します。
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render は要約テキストをPDFバイト列に変換します。
func (r *PDFRenderer) Render(summary string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Document Summary", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	// MultiCellが改ページを自動処理する
	pdf.MultiCell(0, 6, summary, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
