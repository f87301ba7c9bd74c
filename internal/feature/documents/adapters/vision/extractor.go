// Package vision はGoogle Cloud Vision APIを使用したテキスト抽出クライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"

	"legalai_backend/internal/feature/documents/usecase"
)

// pdfMimeType はVision APIに渡すPDFのMIMEタイプです。
const pdfMimeType = "application/pdf"

// maxPagesPerRequest は同期BatchAnnotateFilesの1リクエストあたりのページ数上限です。
// Vision APIの制約: AnnotateFileRequest.Pagesは最大5ページまで。
const maxPagesPerRequest = 5

// annotateClient はVision APIクライアントのうち抽出に使用する操作のサブセットです。
type annotateClient interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	BatchAnnotateFiles(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateFilesResponse, error)
	Close() error
}

// VisionTextExtractor はGoogle Cloud Vision APIでPDF・画像からテキストを抽出します。
type VisionTextExtractor struct {
	client annotateClient
}

// VisionTextExtractorがTextExtractorを実装していることをコンパイル時に検証します。
var _ usecase.TextExtractor = (*VisionTextExtractor)(nil)

// NewVisionTextExtractor はADCを使用してVisionTextExtractorの新しいインスタンスを生成します。
func NewVisionTextExtractor(ctx context.Context) (*VisionTextExtractor, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionTextExtractor{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionTextExtractor) Close() error {
	return v.client.Close()
}

// ExtractImage は画像バイト列からOCRでテキストを抽出します。
func (v *VisionTextExtractor) ExtractImage(ctx context.Context, imageData []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision API error: %s", r.Error.Message)
	}
	if r.FullTextAnnotation == nil {
		return "", nil
	}
	return strings.TrimSpace(r.FullTextAnnotation.Text), nil
}

// ExtractPDF はPDFバイト列から最大maxPagesページ分のテキストを抽出します。
// 最初のリクエストはPagesを空にして先頭5ページを取得し、レスポンスのTotalPagesで
// ページ数上限を検証してから、残りを5ページずつのリクエストに分けて取得します。
// ページ数が上限を超える場合はusecase.ErrTooManyPagesを返します。
func (v *VisionTextExtractor) ExtractPDF(ctx context.Context, data []byte, maxPages int) (string, error) {
	texts, totalPages, err := v.annotatePDF(ctx, data, nil)
	if err != nil {
		return "", err
	}
	if totalPages > maxPages {
		return "", fmt.Errorf("%w: got %d pages, max %d", usecase.ErrTooManyPages, totalPages, maxPages)
	}

	for start := maxPagesPerRequest + 1; start <= totalPages; start += maxPagesPerRequest {
		end := start + maxPagesPerRequest - 1
		if end > totalPages {
			end = totalPages
		}
		pages := make([]int32, 0, end-start+1)
		for p := start; p <= end; p++ {
			pages = append(pages, int32(p))
		}

		more, _, err := v.annotatePDF(ctx, data, pages)
		if err != nil {
			return "", err
		}
		texts = append(texts, more...)
	}

	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}

// annotatePDF は指定ページ（nilなら先頭5ページ）のテキストと総ページ数を返します。
func (v *VisionTextExtractor) annotatePDF(ctx context.Context, data []byte, pages []int32) ([]string, int, error) {
	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  data,
					MimeType: pdfMimeType,
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				Pages: pages,
			},
		},
	}

	resp, err := v.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, 0, nil
	}
	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, 0, fmt.Errorf("vision API error: %s", fileResp.Error.Message)
	}

	var texts []string
	for _, pageResp := range fileResp.Responses {
		if pageResp.Error != nil {
			return nil, 0, fmt.Errorf("vision API error: %s", pageResp.Error.Message)
		}
		if pageResp.FullTextAnnotation != nil {
			texts = append(texts, pageResp.FullTextAnnotation.Text)
		}
	}
	return texts, int(fileResp.TotalPages), nil
}
