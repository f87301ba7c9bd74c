// Package handler はdocumentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalai_backend/internal/api"
	"legalai_backend/internal/feature/documents/domain/entity"
	"legalai_backend/internal/feature/documents/usecase"
	jwtmw "legalai_backend/internal/platform/jwt"
)

// DocumentsUsecase はドキュメント要約パイプラインのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DocumentsUsecase interface {
	Upload(ctx context.Context, ownerEmail, filename string, data []byte) (*entity.Document, error)
	Download(ctx context.Context, ownerEmail, id string) (*entity.Document, error)
	List(ctx context.Context, ownerEmail string) ([]*entity.Document, error)
}

// DocumentHandler はドキュメント操作のHTTPリクエストを処理します。
type DocumentHandler struct {
	uc DocumentsUsecase
}

// NewDocumentHandler はDocumentHandlerの新しいインスタンスを生成します。
func NewDocumentHandler(uc DocumentsUsecase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// isClientError はユーザーが修正可能なアップロードエラーかどうかを判定します。
func isClientError(err error) bool {
	return errors.Is(err, usecase.ErrUnsupportedFileType) ||
		errors.Is(err, usecase.ErrEmptyFile) ||
		errors.Is(err, usecase.ErrFileTooLarge) ||
		errors.Is(err, usecase.ErrNoReadableText) ||
		errors.Is(err, usecase.ErrTooManyPages)
}

// Upload はドキュメントをアップロードして要約を生成します。
//
// エンドポイント: POST /documents
// Content-Type: multipart/form-data
// フィールド: file（PDFまたはpng/jpg/jpeg画像、最大10MB）
func (h *DocumentHandler) Upload(c *gin.Context) {
	subject := c.GetString(jwtmw.ContextSubject)

	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("ファイルのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("ファイルデータの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read file"})
		return
	}

	doc, err := h.uc.Upload(c.Request.Context(), subject, file.Filename, data)
	if err != nil {
		if isClientError(err) {
			slog.Warn("アップロードを拒否", "error", err, "filename", file.Filename, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("ドキュメント要約に失敗", "error", err, "filename", file.Filename)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to summarize document"})
		return
	}

	slog.Info("ドキュメント要約に成功", "id", doc.ID, "owner", subject)
	c.JSON(http.StatusOK, api.UploadResponse{
		ID:           doc.ID,
		Summary:      doc.Summary,
		DownloadLink: "/documents/" + doc.ID + "/report",
	})
}

// Download は要約レポートPDFを返します。
//
// エンドポイント: GET /documents/:id/report
func (h *DocumentHandler) Download(c *gin.Context) {
	subject := c.GetString(jwtmw.ContextSubject)
	id := c.Param("id")

	doc, err := h.uc.Download(c.Request.Context(), subject, id)
	if err != nil {
		if errors.Is(err, usecase.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "document not found"})
			return
		}
		slog.Error("レポートの取得に失敗", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="summary_`+doc.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc.Report)
}

// List は認証済みユーザーの要約履歴を返します。
//
// エンドポイント: GET /documents
func (h *DocumentHandler) List(c *gin.Context) {
	subject := c.GetString(jwtmw.ContextSubject)

	docs, err := h.uc.List(c.Request.Context(), subject)
	if err != nil {
		slog.Error("履歴の取得に失敗", "error", err, "owner", subject)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list documents"})
		return
	}

	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, api.DocumentResponse{
			ID:        d.ID,
			Filename:  d.Filename,
			Summary:   d.Summary,
			CreatedAt: d.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
