package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"origination-engine/internal/api/handler"
	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/pkg/apperrors"
)

type MockKYCService struct {
	mock.Mock
}

func (_m *MockKYCService) GetStatus(ctx context.Context, customerID string) (*kyc.StatusView, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *kyc.StatusView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kyc.StatusView)
	}
	return r0, ret.Error(1)
}

func (_m *MockKYCService) SubmitDocument(ctx context.Context, customerID, documentType, fileName, status string) (*kyc.SubmitResult, error) {
	ret := _m.Called(ctx, customerID, documentType, fileName, status)

	var r0 *kyc.SubmitResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kyc.SubmitResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockKYCService) Verify(ctx context.Context, customerID string) (*kyc.VerificationResult, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *kyc.VerificationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kyc.VerificationResult)
	}
	return r0, ret.Error(1)
}

func TestGetKYCStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		view := &kyc.StatusView{
			Record:            &kyc.Record{CustomerID: "C002"},
			CompletionScore:   50,
			DocumentsRequired: []string{"Address Proof"},
			Status:            kyc.StatusPending,
		}
		mockService.On("GetStatus", mock.Anything, "C002").Return(view, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/kyc/C002", nil), "customerId", "C002")
		rec := httptest.NewRecorder()

		h.GetStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.KYCStatusResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 50, resp.Data.CompletionScore)
	})

	t.Run("record not found", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		mockService.On("GetStatus", mock.Anything, "C999").
			Return(nil, fmt.Errorf("%w: KYC record for customer C999", apperrors.ErrNotFound))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/kyc/C999", nil), "customerId", "C999")
		rec := httptest.NewRecorder()

		h.GetStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitDocumentHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		result := &kyc.SubmitResult{
			CustomerID:      "C002",
			Document:        kyc.Document{ID: "doc-1", Type: "pan"},
			UpdatedKYCScore: 75,
			NextSteps:       []string{"Bank Statement (3 months)"},
		}
		mockService.On("SubmitDocument", mock.Anything, "C002", "pan", "pan.pdf", "").Return(result, nil)

		body, _ := json.Marshal(dto.SubmitDocumentRequest{DocumentType: "pan", FileName: "pan.pdf"})
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/kyc/submit/C002", bytes.NewReader(body)), "customerId", "C002")
		rec := httptest.NewRecorder()

		h.SubmitDocument(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.SubmitDocumentResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 75, resp.UpdatedKYCScore)
		mockService.AssertExpectations(t)
	})

	t.Run("missing document type", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		body, _ := json.Marshal(dto.SubmitDocumentRequest{FileName: "pan.pdf"})
		req := withURLParam(httptest.NewRequest(http.MethodPost, "/kyc/submit/C002", bytes.NewReader(body)), "customerId", "C002")
		rec := httptest.NewRecorder()

		h.SubmitDocument(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "SubmitDocument")
	})
}

func TestVerifyHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		result := &kyc.VerificationResult{
			VerificationID:  "ver-1",
			CustomerID:      "C002",
			OverallStatus:   kyc.StatusApproved,
			ConfidenceScore: 92,
			Issues:          []string{},
		}
		mockService.On("Verify", mock.Anything, "C002").Return(result, nil)

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/kyc/verify/C002", nil), "customerId", "C002")
		rec := httptest.NewRecorder()

		h.Verify(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.VerificationResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, kyc.StatusApproved, resp.Data.OverallStatus)
	})

	t.Run("verification already pending", func(t *testing.T) {
		mockService := new(MockKYCService)
		h := handler.NewKYCHandler(mockService, testLogger())

		mockService.On("Verify", mock.Anything, "C002").
			Return(nil, fmt.Errorf("%w: customer C002", apperrors.ErrVerificationPending))

		req := withURLParam(httptest.NewRequest(http.MethodPost, "/kyc/verify/C002", nil), "customerId", "C002")
		rec := httptest.NewRecorder()

		h.Verify(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	})
}
