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
	"origination-engine/internal/domain/offer"
	"origination-engine/internal/pkg/apperrors"
)

type MockOfferService struct {
	mock.Mock
}

func (_m *MockOfferService) ListOffers(ctx context.Context) ([]*offer.Offer, error) {
	ret := _m.Called(ctx)

	var r0 []*offer.Offer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*offer.Offer)
	}
	return r0, ret.Error(1)
}

func (_m *MockOfferService) PersonalizedOffers(ctx context.Context, phone string) (*offer.PersonalizedBundle, error) {
	ret := _m.Called(ctx, phone)

	var r0 *offer.PersonalizedBundle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*offer.PersonalizedBundle)
	}
	return r0, ret.Error(1)
}

func (_m *MockOfferService) QuoteEMI(ctx context.Context, principal, annualRatePercent float64, tenureMonths int) (*offer.EMIQuote, error) {
	ret := _m.Called(ctx, principal, annualRatePercent, tenureMonths)

	var r0 *offer.EMIQuote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*offer.EMIQuote)
	}
	return r0, ret.Error(1)
}

func TestListOffersHandler(t *testing.T) {
	mockService := new(MockOfferService)
	h := handler.NewOfferHandler(mockService, testLogger())

	offers := []*offer.Offer{{OfferID: "OFF001", Name: "Personal Loan Express"}}
	mockService.On("ListOffers", mock.Anything).Return(offers, nil)

	req := httptest.NewRequest(http.MethodGet, "/offers", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.OffersResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestPersonalizedHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockOfferService)
		h := handler.NewOfferHandler(mockService, testLogger())

		bundle := &offer.PersonalizedBundle{
			CustomerID: "C001",
			EligibleOffers: []offer.PersonalizedOffer{
				{Offer: offer.Offer{OfferID: "OFF001"}, PersonalizedInterestRate: 10.0},
			},
		}
		bundle.RecommendedOffer = &bundle.EligibleOffers[0]
		mockService.On("PersonalizedOffers", mock.Anything, "9876543210").Return(bundle, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/offers/personalized/9876543210", nil), "phone", "9876543210")
		rec := httptest.NewRecorder()

		h.Personalized(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.PersonalizedOffersResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "C001", resp.CustomerID)
		assert.Equal(t, "OFF001", resp.RecommendedOffer.OfferID)
	})

	t.Run("customer not found", func(t *testing.T) {
		mockService := new(MockOfferService)
		h := handler.NewOfferHandler(mockService, testLogger())

		mockService.On("PersonalizedOffers", mock.Anything, "0000000000").
			Return(nil, fmt.Errorf("%w: customer", apperrors.ErrNotFound))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/offers/personalized/0000000000", nil), "phone", "0000000000")
		rec := httptest.NewRecorder()

		h.Personalized(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCalculateEMIHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockOfferService)
		h := handler.NewOfferHandler(mockService, testLogger())

		quote := &offer.EMIQuote{
			Principal:           300000,
			MonthlyInterestRate: 0.875,
			TenureMonths:        36,
			MonthlyEMI:          9751,
			TotalInterest:       51036,
			TotalPayable:        351036,
		}
		mockService.On("QuoteEMI", mock.Anything, 300000.0, 10.5, 36).Return(quote, nil)

		body, _ := json.Marshal(dto.CalculateEMIRequest{Principal: 300000, Rate: 10.5, TenureMonths: 36})
		req := httptest.NewRequest(http.MethodPost, "/offers/calculate-emi", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.CalculateEMI(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.EMIQuoteResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 9751.0, resp.MonthlyEMI)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid principal", func(t *testing.T) {
		mockService := new(MockOfferService)
		h := handler.NewOfferHandler(mockService, testLogger())

		body, _ := json.Marshal(dto.CalculateEMIRequest{Principal: 0, Rate: 10.5, TenureMonths: 36})
		req := httptest.NewRequest(http.MethodPost, "/offers/calculate-emi", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.CalculateEMI(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "QuoteEMI")
	})

	t.Run("malformed body", func(t *testing.T) {
		mockService := new(MockOfferService)
		h := handler.NewOfferHandler(mockService, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/offers/calculate-emi", bytes.NewReader([]byte(`{`)))
		rec := httptest.NewRecorder()

		h.CalculateEMI(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "QuoteEMI")
	})
}
