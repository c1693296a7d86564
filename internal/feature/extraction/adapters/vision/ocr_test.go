package vision

import (
	"context"
	"errors"
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/status"

	"contract_analyzer/internal/feature/extraction/usecase"
)

func pageResponse(text string) *visionpb.AnnotateImageResponse {
	return &visionpb.AnnotateImageResponse{FullTextAnnotation: &visionpb.TextAnnotation{Text: text}}
}

func TestOCR_Extract_Image(t *testing.T) {
	var gotReq *visionpb.BatchAnnotateImagesRequest
	o := &OCR{
		annotateImages: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
			gotReq = req
			return &visionpb.BatchAnnotateImagesResponse{
				Responses: []*visionpb.AnnotateImageResponse{pageResponse("Monthly fee: 100 EUR")},
			}, nil
		},
	}

	text, err := o.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'})

	require.NoError(t, err)
	assert.Equal(t, "Monthly fee: 100 EUR", text)
	require.Len(t, gotReq.Requests, 1)
	assert.Equal(t, visionpb.Feature_DOCUMENT_TEXT_DETECTION, gotReq.Requests[0].Features[0].Type)
}

func TestOCR_Extract_PDF(t *testing.T) {
	var gotReq *visionpb.BatchAnnotateFilesRequest
	o := &OCR{
		annotateFiles: func(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error) {
			gotReq = req
			return &visionpb.BatchAnnotateFilesResponse{
				Responses: []*visionpb.AnnotateFileResponse{{
					Responses: []*visionpb.AnnotateImageResponse{pageResponse("page one"), pageResponse("page two")},
				}},
			}, nil
		},
	}

	text, err := o.Extract(context.Background(), []byte("%PDF-1.7 scanned"))

	require.NoError(t, err)
	assert.Equal(t, "page one\n\npage two", text)
	assert.Equal(t, "application/pdf", gotReq.Requests[0].InputConfig.MimeType)
	assert.Len(t, gotReq.Requests[0].Pages, maxSyncPDFPages)
}

func TestOCR_Extract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *visionpb.BatchAnnotateImagesResponse
		err     error
		wantErr error
		wantMsg string
	}{
		{name: "transport error", err: errors.New("unavailable"), wantMsg: "vision API request failed"},
		{name: "no responses", resp: &visionpb.BatchAnnotateImagesResponse{}, wantErr: usecase.ErrNoText},
		{name: "blank text", resp: &visionpb.BatchAnnotateImagesResponse{Responses: []*visionpb.AnnotateImageResponse{pageResponse("  ")}}, wantErr: usecase.ErrNoText},
		{
			name: "api error in response",
			resp: &visionpb.BatchAnnotateImagesResponse{Responses: []*visionpb.AnnotateImageResponse{{
				Error: &status.Status{Message: "bad image"},
			}}},
			wantMsg: "bad image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &OCR{
				annotateImages: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
					return tt.resp, tt.err
				},
			}

			_, err := o.Extract(context.Background(), []byte("jpeg bytes"))

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestOCR_Accepts(t *testing.T) {
	o := &OCR{}
	assert.True(t, o.Accepts("scan.pdf"))
	assert.True(t, o.Accepts("photo.JPG"))
	assert.False(t, o.Accepts("contract.docx"))
	assert.False(t, o.Accepts("contract.txt"))
	assert.NoError(t, o.Close())
}
